// SPDX-License-Identifier: BSD-3-Clause

package ecdsasecp256k1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractionestate/cardano-crypto-go/dsign"
)

func testSeed(b byte) []byte {
	s := make([]byte, SeedSize)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestSignVerifyRoundTrip(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x11))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	msg := []byte("deterministic nonce, deterministic signature")
	sig, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	require.NoError(t, a.Verify(nil, vk, msg, sig))
}

func TestSignIsDeterministic(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x22))
	require.NoError(t, err)

	msg := []byte("rfc6979")
	sig1, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	sig2, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	require.Equal(t, sig1.Bytes(), sig2.Bytes())
}

func TestSignProducesLowS(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x33))
	require.NoError(t, err)

	sig, err := a.Sign(nil, []byte("low-s check"), sk)
	require.NoError(t, err)

	sBytes := sig.Bytes()[32:]
	sBig := new(big.Int).SetBytes(sBytes)
	require.True(t, sBig.Cmp(halfOrder) <= 0, "signature s must be low-S (<= n/2)")
}

func TestVerifyRejectsHighS(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x44))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	msg := []byte("malleability check")
	sig, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)

	// Flip s to its high-order complement: n - s. Still a valid ECDSA
	// signature mathematically, but non-canonical and must be rejected.
	sBytes := sig.Bytes()
	sBig := new(big.Int).SetBytes(sBytes[32:])
	highSBig := new(big.Int).Sub(curveOrder, sBig)
	highSBytes := highSBig.FillBytes(make([]byte, scalarSize))

	tampered := Signature{}
	copy(tampered.r[:], sBytes[:32])
	copy(tampered.s[:], highSBytes)

	err = a.Verify(nil, vk, msg, tampered)
	require.ErrorIs(t, err, dsign.ErrNonCanonicalSignature)
}

func TestSerializeRoundTrip(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x55))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	vkBytes := a.RawSerializeVerKey(vk)
	require.Len(t, vkBytes, VerKeySize)
	vk2, err := a.RawDeserializeVerKey(vkBytes)
	require.NoError(t, err)
	require.Equal(t, vkBytes, a.RawSerializeVerKey(vk2))
}
