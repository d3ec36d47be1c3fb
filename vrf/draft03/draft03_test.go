// SPDX-License-Identifier: BSD-3-Clause

package draft03

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

func TestProveVerifyRoundTrip(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x11))
	require.NoError(t, err)
	defer sk.Forget()

	alpha := []byte("message to be proven")
	proof, err := Prove(sk, alpha)
	require.NoError(t, err)

	out, err := Verify(vk, proof, alpha)
	require.NoError(t, err)
	require.Len(t, out, OutputSize)
}

func TestProveIsDeterministic(t *testing.T) {
	sk, _, err := KeypairFromSeed(testSeed(0x22))
	require.NoError(t, err)
	defer sk.Forget()

	alpha := []byte("fixed alpha")
	p1, err := Prove(sk, alpha)
	require.NoError(t, err)
	p2, err := Prove(sk, alpha)
	require.NoError(t, err)
	require.Equal(t, p1.Bytes(), p2.Bytes())
}

func TestProofToHashMatchesVerifyOutput(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x33))
	require.NoError(t, err)
	defer sk.Forget()

	alpha := []byte("beta check")
	proof, err := Prove(sk, alpha)
	require.NoError(t, err)

	verifyOut, err := Verify(vk, proof, alpha)
	require.NoError(t, err)

	hashOut, err := ProofToHash(proof)
	require.NoError(t, err)
	require.Equal(t, verifyOut, hashOut)
}

func TestVerifyRejectsTamperedAlpha(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x44))
	require.NoError(t, err)
	defer sk.Forget()

	proof, err := Prove(sk, []byte("original alpha"))
	require.NoError(t, err)

	_, err = Verify(vk, proof, []byte("tampered alpha"))
	require.Error(t, err)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	sk1, _, err := KeypairFromSeed(testSeed(0x55))
	require.NoError(t, err)
	defer sk1.Forget()
	sk2, vk2, err := KeypairFromSeed(testSeed(0x66))
	require.NoError(t, err)
	defer sk2.Forget()

	alpha := []byte("cross key check")
	proof, err := Prove(sk1, alpha)
	require.NoError(t, err)

	_, err = Verify(vk2, proof, alpha)
	require.Error(t, err)
}

func TestDifferentKeysProduceDifferentOutputs(t *testing.T) {
	sk1, _, err := KeypairFromSeed(testSeed(0x77))
	require.NoError(t, err)
	defer sk1.Forget()
	sk2, _, err := KeypairFromSeed(testSeed(0x88))
	require.NoError(t, err)
	defer sk2.Forget()

	alpha := []byte("shared alpha")
	p1, err := Prove(sk1, alpha)
	require.NoError(t, err)
	p2, err := Prove(sk2, alpha)
	require.NoError(t, err)
	require.NotEqual(t, p1.Bytes(), p2.Bytes())
}

func TestProofToHashRejectsMalformedGamma(t *testing.T) {
	// All-0xFF gamma bytes encode y = 2^255-1, which is not below the
	// field prime and so is not a canonical Edwards25519 point encoding.
	// (An all-zero gamma would not do: y = 0 decodes to a valid point of
	// order 4.)
	var proof Proof
	for i := 0; i < 32; i++ {
		proof.b[i] = 0xFF
	}
	_, err := ProofToHash(proof)
	require.Error(t, err)
}
