// SPDX-License-Identifier: BSD-3-Clause

// Package seed implements the seed and hash-algorithm abstractions that
// DSIGN key generation and the KES tree's deterministic seed expansion
// are built on.
package seed

import (
	"crypto/rand"
	"errors"
)

// ErrInvalidLength is returned when a byte slice does not match an
// expected, caller-documented length.
var ErrInvalidLength = errors.New("seed: invalid length")

// Seed is an immutable byte sequence of known length, opaque to callers.
// It offers no partial-exposure accessor; Bytes returns a fresh copy.
type Seed struct {
	b []byte
}

// NewSeedFromBytes constructs a Seed from b, copying it so the caller's
// slice and the Seed's internal storage never alias.
func NewSeedFromBytes(b []byte) Seed {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Seed{b: cp}
}

// NewSeedFromEntropy draws n bytes from the OS CSPRNG.
func NewSeedFromEntropy(n int) (Seed, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return Seed{}, err
	}
	return Seed{b: b}, nil
}

// Len reports the seed's length in bytes.
func (s Seed) Len() int {
	return len(s.b)
}

// Bytes returns a copy of the seed's bytes; the internal storage is
// never handed out.
func (s Seed) Bytes() []byte {
	cp := make([]byte, len(s.b))
	copy(cp, s.b)
	return cp
}

// Split deterministically halves the seed's entropy into two seeds of
// equal claimed length, via the default hash algorithm (Blake2b-256).
// This is a thin convenience over ExpandSeed; KES derivation uses
// ExpandSeed directly so it can be parameterized by HashAlgorithm.
func (s Seed) Split() (Seed, Seed) {
	l, r := ExpandSeed[Blake2b256](s.b)
	return Seed{b: l}, Seed{b: r}
}

// ExpandSeed splits seed into two halves using domain separators 0x01
// and 0x02, i.e. (H(0x01 || seed), H(0x02 || seed)).
func ExpandSeed[H HashAlgorithm](seed []byte) (left, right []byte) {
	var h H
	return h.ExpandSeed(seed)
}

// ExpandSeedWith is ExpandSeed for callers holding a HashAlgorithm as
// an interface value rather than as a compile-time type parameter
// (e.g. kes.SumKes, which fixes its hash algorithm at construction
// time rather than at instantiation time).
func ExpandSeedWith(h HashAlgorithm, seed []byte) (left, right []byte) {
	return h.ExpandSeed(seed)
}
