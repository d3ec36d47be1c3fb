// SPDX-License-Identifier: BSD-3-Clause

package schnorrsecp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSeed(b byte) []byte {
	s := make([]byte, SeedSize)
	for i := range s {
		s[i] = b
	}
	return s
}

func testMsg(b byte) []byte {
	m := make([]byte, MessageSize)
	for i := range m {
		m[i] = b
	}
	return m
}

func TestSignVerifyRoundTrip(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x11))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	msg := testMsg(0xAB)
	sig, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	require.NoError(t, a.Verify(nil, vk, msg, sig))
}

func TestSignIsDeterministic(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x22))
	require.NoError(t, err)

	msg := testMsg(0x01)
	sig1, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	sig2, err := a.Sign(nil, msg, sk)
	require.NoError(t, err)
	require.Equal(t, sig1.Bytes(), sig2.Bytes())
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x33))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	sig, err := a.Sign(nil, testMsg(0x02), sk)
	require.NoError(t, err)

	require.Error(t, a.Verify(nil, vk, testMsg(0x03), sig))
}

func TestGenKeyRejectsWrongSeedLength(t *testing.T) {
	a := Algorithm{}
	_, err := a.GenKey(make([]byte, 31))
	require.Error(t, err)
}

func TestSignRejectsWrongMessageLength(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x44))
	require.NoError(t, err)
	_, err = a.Sign(nil, []byte("not 32 bytes"), sk)
	require.Error(t, err)
}

func TestVerificationKeyIsEvenYRepresentative(t *testing.T) {
	// GenKey must always return a signing key whose derived public point
	// has even y, regardless of the raw seed scalar's own parity. The
	// stored scalar's public point is checked directly, and deriving
	// twice from the same key must give the same x-only key.
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x55))
	require.NoError(t, err)
	_, yOdd := scalarBaseMultXOnly(sk.d)
	require.False(t, yOdd, "GenKey must store the even-y scalar")
	vk1, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)
	vk2, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)
	require.Equal(t, vk1.Bytes(), vk2.Bytes())
}

func TestSerializeRoundTrip(t *testing.T) {
	a := Algorithm{}
	sk, err := a.GenKey(testSeed(0x66))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	vkBytes := a.RawSerializeVerKey(vk)
	require.Len(t, vkBytes, VerKeySize)
	vk2, err := a.RawDeserializeVerKey(vkBytes)
	require.NoError(t, err)
	require.Equal(t, vkBytes, a.RawSerializeVerKey(vk2))

	skBytes := a.RawSerializeSignKey(sk)
	sk2, err := a.RawDeserializeSignKeyM(skBytes)
	require.NoError(t, err)
	vk3, err := a.DeriveVerificationKey(sk2)
	require.NoError(t, err)
	require.Equal(t, vkBytes, a.RawSerializeVerKey(vk3))
}
