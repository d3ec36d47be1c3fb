// SPDX-License-Identifier: BSD-3-Clause

package draft13

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

func TestProofToHashNeedsNoVerify(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x22))
	require.NoError(t, err)
	defer sk.Forget()

	alpha := []byte("key image check")
	proof, err := Prove(sk, alpha)
	require.NoError(t, err)

	verifyOut, err := Verify(vk, proof, alpha)
	require.NoError(t, err)

	hashOut, err := ProofToHash(proof)
	require.NoError(t, err)
	require.Equal(t, verifyOut, hashOut)
}

func TestDecodeProofRejectsMismatchedKeyImage(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x33))
	require.NoError(t, err)
	defer sk.Forget()

	proof, err := Prove(sk, []byte("alpha"))
	require.NoError(t, err)

	tampered := proof
	tampered.b[96] ^= 0xFF

	_, err = Verify(vk, tampered, []byte("alpha"))
	require.Error(t, err)
}

func TestVerifyRejectsTamperedAlpha(t *testing.T) {
	sk, vk, err := KeypairFromSeed(testSeed(0x44))
	require.NoError(t, err)
	defer sk.Forget()

	proof, err := Prove(sk, []byte("original"))
	require.NoError(t, err)

	_, err = Verify(vk, proof, []byte("tampered"))
	require.Error(t, err)
}

func TestBatchVerify(t *testing.T) {
	var vks []VerKey
	var proofs []Proof
	var alphas [][]byte

	for i := byte(0); i < 4; i++ {
		sk, vk, err := KeypairFromSeed(testSeed(0x10 + i))
		require.NoError(t, err)
		defer sk.Forget()

		alpha := []byte{0xA0 + i}
		proof, err := Prove(sk, alpha)
		require.NoError(t, err)

		vks = append(vks, vk)
		proofs = append(proofs, proof)
		alphas = append(alphas, alpha)
	}

	outputs, err := BatchVerify(vks, proofs, alphas)
	require.NoError(t, err)
	require.Len(t, outputs, 4)
	for _, out := range outputs {
		require.Len(t, out, OutputSize)
	}
}

func TestBatchVerifyRejectsMismatchedLengths(t *testing.T) {
	_, err := BatchVerify([]VerKey{{}}, nil, nil)
	require.Error(t, err)
}

func TestBatchVerifyFailsOnFirstBadEntry(t *testing.T) {
	sk1, vk1, err := KeypairFromSeed(testSeed(0x51))
	require.NoError(t, err)
	defer sk1.Forget()
	sk2, vk2, err := KeypairFromSeed(testSeed(0x52))
	require.NoError(t, err)
	defer sk2.Forget()

	alpha1 := []byte("alpha-one")
	alpha2 := []byte("alpha-two")
	proof1, err := Prove(sk1, alpha1)
	require.NoError(t, err)
	proof2, err := Prove(sk2, alpha2)
	require.NoError(t, err)

	// Pair proof2 with vk1 instead of vk2 so the second entry fails.
	_, err = BatchVerify([]VerKey{vk1, vk1}, []Proof{proof1, proof2}, [][]byte{alpha1, alpha2})
	require.Error(t, err)
	_ = vk2
}
