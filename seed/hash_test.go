// SPDX-License-Identifier: BSD-3-Clause

package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func allHashAlgorithms() map[string]HashAlgorithm {
	return map[string]HashAlgorithm{
		"Blake2b256":   Blake2b256{},
		"Blake2b224":   Blake2b224{},
		"Blake2b512":   Blake2b512{},
		"SHA256":       SHA256{},
		"SHA512":       SHA512{},
		"SHA3256":      SHA3256{},
		"SHA3512":      SHA3512{},
		"Keccak256":    Keccak256{},
		"RIPEMD160":    RIPEMD160{},
		"Hash160":      Hash160{},
		"DoubleSHA256": DoubleSHA256{},
	}
}

func TestHashOutputSizes(t *testing.T) {
	for name, h := range allHashAlgorithms() {
		got := h.Hash([]byte("size check"))
		require.Lenf(t, got, h.OutputSize(), "%s output size", name)
	}
}

func TestHashConcatEqualsHashOfConcatenation(t *testing.T) {
	a := []byte("first half ")
	b := []byte("second half")
	joined := append(append([]byte{}, a...), b...)

	for name, h := range allHashAlgorithms() {
		require.Equalf(t, h.Hash(joined), h.HashConcat(a, b), "%s HashConcat", name)
	}
}

func TestExpandSeedMatchesManualDomainSeparation(t *testing.T) {
	seedBytes := []byte("expand me with domain separators")

	for name, h := range allHashAlgorithms() {
		left, right := h.ExpandSeed(seedBytes)
		require.Equalf(t, h.Hash(append([]byte{0x01}, seedBytes...)), left, "%s left half", name)
		require.Equalf(t, h.Hash(append([]byte{0x02}, seedBytes...)), right, "%s right half", name)
	}
}

// TestSHA256KnownVector pins the hash plumbing to a published FIPS 180-2
// vector, so a wiring mistake (wrong hash behind a name, swapped
// concat order) cannot survive.
func TestSHA256KnownVector(t *testing.T) {
	want, err := hex.DecodeString(
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	require.NoError(t, err)
	require.Equal(t, want, SHA256{}.Hash([]byte("abc")))
}

func TestDoubleSHA256IsTwoRounds(t *testing.T) {
	input := []byte("two rounds")
	first := sha256.Sum256(input)
	second := sha256.Sum256(first[:])
	require.Equal(t, second[:], DoubleSHA256{}.Hash(input))
}

func TestHash160IsRIPEMD160OfSHA256(t *testing.T) {
	input := []byte("address digest")
	inner := sha256.Sum256(input)
	require.Equal(t, RIPEMD160{}.Hash(inner[:]), Hash160{}.Hash(input))
}

func TestKeccak256DiffersFromSHA3256(t *testing.T) {
	input := []byte("pre- vs post-NIST padding")
	require.NotEqual(t, SHA3256{}.Hash(input), Keccak256{}.Hash(input))
}
