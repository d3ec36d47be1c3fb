// SPDX-License-Identifier: BSD-3-Clause

package seed

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Cardano/Bitcoin-style Hash160
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm characterizes a fixed-output-size hash function as used
// throughout the KES tree and seed-expansion paths.
type HashAlgorithm interface {
	// OutputSize is the hash's fixed output length in bytes.
	OutputSize() int
	// Hash returns H(input).
	Hash(input []byte) []byte
	// HashConcat returns H(a || b), which implementations may optimize
	// relative to Hash(append(a, b...)).
	HashConcat(a, b []byte) []byte
	// ExpandSeed returns (H(0x01 || seed), H(0x02 || seed)).
	ExpandSeed(seed []byte) (left, right []byte)
}

func expandSeedWith(h func([]byte) []byte, seed []byte) ([]byte, []byte) {
	left := h(append([]byte{0x01}, seed...))
	right := h(append([]byte{0x02}, seed...))
	return left, right
}

// Blake2b256 is the KES hash: 32-byte Blake2b output.
type Blake2b256 struct{}

// OutputSize implements HashAlgorithm.
func (Blake2b256) OutputSize() int { return 32 }

// Hash implements HashAlgorithm.
func (Blake2b256) Hash(input []byte) []byte {
	h := blake2b.Sum256(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (b Blake2b256) HashConcat(a, c []byte) []byte {
	h, _ := blake2b.New256(nil)
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (b Blake2b256) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(b.Hash, seed)
}

// Blake2b224 is a 28-byte Blake2b instance.
type Blake2b224 struct{}

// OutputSize implements HashAlgorithm.
func (Blake2b224) OutputSize() int { return 28 }

// Hash implements HashAlgorithm.
func (Blake2b224) Hash(input []byte) []byte {
	h, _ := blake2b.New(28, nil)
	h.Write(input)
	return h.Sum(nil)
}

// HashConcat implements HashAlgorithm.
func (b Blake2b224) HashConcat(a, c []byte) []byte {
	h, _ := blake2b.New(28, nil)
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (b Blake2b224) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(b.Hash, seed)
}

// Blake2b512 is a 64-byte Blake2b instance.
type Blake2b512 struct{}

// OutputSize implements HashAlgorithm.
func (Blake2b512) OutputSize() int { return 64 }

// Hash implements HashAlgorithm.
func (Blake2b512) Hash(input []byte) []byte {
	h := blake2b.Sum512(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (b Blake2b512) HashConcat(a, c []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (b Blake2b512) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(b.Hash, seed)
}

// SHA256 is the standard 32-byte SHA-2 instance.
type SHA256 struct{}

// OutputSize implements HashAlgorithm.
func (SHA256) OutputSize() int { return 32 }

// Hash implements HashAlgorithm.
func (SHA256) Hash(input []byte) []byte {
	h := sha256.Sum256(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (s SHA256) HashConcat(a, c []byte) []byte {
	h := sha256.New()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (s SHA256) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(s.Hash, seed)
}

// SHA512 is the standard 64-byte SHA-2 instance.
type SHA512 struct{}

// OutputSize implements HashAlgorithm.
func (SHA512) OutputSize() int { return 64 }

// Hash implements HashAlgorithm.
func (SHA512) Hash(input []byte) []byte {
	h := sha512.Sum512(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (s SHA512) HashConcat(a, c []byte) []byte {
	h := sha512.New()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (s SHA512) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(s.Hash, seed)
}

// SHA3256 is the 32-byte SHA-3 instance.
type SHA3256 struct{}

// OutputSize implements HashAlgorithm.
func (SHA3256) OutputSize() int { return 32 }

// Hash implements HashAlgorithm.
func (SHA3256) Hash(input []byte) []byte {
	h := sha3.Sum256(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (s SHA3256) HashConcat(a, c []byte) []byte {
	h := sha3.New256()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (s SHA3256) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(s.Hash, seed)
}

// SHA3512 is the 64-byte SHA-3 instance.
type SHA3512 struct{}

// OutputSize implements HashAlgorithm.
func (SHA3512) OutputSize() int { return 64 }

// Hash implements HashAlgorithm.
func (SHA3512) Hash(input []byte) []byte {
	h := sha3.Sum512(input)
	return h[:]
}

// HashConcat implements HashAlgorithm.
func (s SHA3512) HashConcat(a, c []byte) []byte {
	h := sha3.New512()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (s SHA3512) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(s.Hash, seed)
}

// Keccak256 is the original (pre-NIST-finalization) Keccak 32-byte
// instance, distinct from SHA3256.
type Keccak256 struct{}

// OutputSize implements HashAlgorithm.
func (Keccak256) OutputSize() int { return 32 }

// Hash implements HashAlgorithm.
func (Keccak256) Hash(input []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	return h.Sum(nil)
}

// HashConcat implements HashAlgorithm.
func (k Keccak256) HashConcat(a, c []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (k Keccak256) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(k.Hash, seed)
}

// RIPEMD160 is the 20-byte RIPEMD-160 instance.
type RIPEMD160 struct{}

// OutputSize implements HashAlgorithm.
func (RIPEMD160) OutputSize() int { return 20 }

// Hash implements HashAlgorithm.
func (RIPEMD160) Hash(input []byte) []byte {
	h := ripemd160.New()
	h.Write(input)
	return h.Sum(nil)
}

// HashConcat implements HashAlgorithm.
func (r RIPEMD160) HashConcat(a, c []byte) []byte {
	h := ripemd160.New()
	h.Write(a)
	h.Write(c)
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (r RIPEMD160) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(r.Hash, seed)
}

// Hash160 is RIPEMD-160(SHA-256(x)), the Bitcoin/Cardano address digest.
type Hash160 struct{}

// OutputSize implements HashAlgorithm.
func (Hash160) OutputSize() int { return 20 }

// Hash implements HashAlgorithm.
func (Hash160) Hash(input []byte) []byte {
	sh := sha256.Sum256(input)
	h := ripemd160.New()
	h.Write(sh[:])
	return h.Sum(nil)
}

// HashConcat implements HashAlgorithm.
func (x Hash160) HashConcat(a, c []byte) []byte {
	sh := sha256.New()
	sh.Write(a)
	sh.Write(c)
	h := ripemd160.New()
	h.Write(sh.Sum(nil))
	return h.Sum(nil)
}

// ExpandSeed implements HashAlgorithm.
func (x Hash160) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(x.Hash, seed)
}

// DoubleSHA256 is SHA-256(SHA-256(x)).
type DoubleSHA256 struct{}

// OutputSize implements HashAlgorithm.
func (DoubleSHA256) OutputSize() int { return 32 }

// Hash implements HashAlgorithm.
func (DoubleSHA256) Hash(input []byte) []byte {
	h1 := sha256.Sum256(input)
	h2 := sha256.Sum256(h1[:])
	return h2[:]
}

// HashConcat implements HashAlgorithm.
func (d DoubleSHA256) HashConcat(a, c []byte) []byte {
	h := sha256.New()
	h.Write(a)
	h.Write(c)
	h1 := h.Sum(nil)
	h2 := sha256.Sum256(h1)
	return h2[:]
}

// ExpandSeed implements HashAlgorithm.
func (d DoubleSHA256) ExpandSeed(seed []byte) ([]byte, []byte) {
	return expandSeedWith(d.Hash, seed)
}

// ConstantTimeEqual compares a and b in constant time. Any
// secret-dependent comparison in this module must go through this
// helper rather than bytes.Equal.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
