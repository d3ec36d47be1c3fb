// SPDX-License-Identifier: BSD-3-Clause

// Package kes implements Key Evolving Signatures: the MMM binary-tree
// forward-secure construction used by Cardano's Praos protocol, built
// recursively on top of any dsign.UnsoundAlgorithm, plus the "compact"
// variant whose signatures carry only the sibling verification key
// needed to reconstruct the root verification key instead of both
// children's.
//
// Tree depth is fixed at compile time: each Sum/CompactSum level is a
// separate instantiation of the same generic type, nesting the level
// below it. Each level reaches its child algorithm and its hash through
// interface-typed fields, so those calls are dynamically dispatched,
// and signing and verification allocate small byte slices for hashes
// and serialized keys.
// Long-lived secret state (child signing keys, the dormant
// right-subtree seed) lives in mlock buffers and is erased at the
// moment the construction no longer needs it; the two subtree seeds
// GenKey expands are ordinary byte slices that it zeroes before it
// returns.
package kes

import "errors"

// Error kinds shared across all KES algorithms.
var (
	ErrPeriodOutOfRange = errors.New("kes: period out of range for this key")
	ErrKeyExhausted     = errors.New("kes: signing key has no further periods to evolve to")
	ErrVerifyFailed     = errors.New("kes: verification failed")
	ErrInvalidEncoding  = errors.New("kes: invalid encoding")
)

// Algorithm is the uniform KES contract, generic over its concrete
// signing-key, verification-key, and signature representations so that
// SumKes/CompactSumKes can nest one instantiation inside another.
type Algorithm[SK any, VK any, Sig any] interface {
	// SeedSize is the byte length GenKey expects.
	SeedSize() int
	// VerKeySize is the wire-encoded verification key length.
	VerKeySize() int
	// SignatureSize is the wire-encoded signature length.
	SignatureSize() int
	// TotalPeriods is the number of periods 0..TotalPeriods()-1 a key
	// generated by this algorithm can sign across its lifetime.
	TotalPeriods() int

	// GenKey deterministically derives a period-0 signing key from seed.
	GenKey(seed []byte) (SK, error)
	// DeriveVerificationKey derives the (period-invariant) verification key for sk.
	DeriveVerificationKey(sk SK) (VK, error)

	// SignKES signs msg at the given period under sk.
	SignKES(ctx []byte, msg []byte, period int, sk SK) (Sig, error)
	// VerifyKES verifies sig of msg at the given period under vk.
	VerifyKES(ctx []byte, vk VK, period int, msg []byte, sig Sig) error
	// UpdateKES evolves sk from period to period+1, erasing the period
	// key's secret material in the process. It returns ErrKeyExhausted
	// when period+1 is beyond TotalPeriods()-1.
	UpdateKES(sk SK, period int) (SK, error)

	// RawSerializeVerKey encodes vk to its fixed-size wire form.
	RawSerializeVerKey(vk VK) []byte
	// RawDeserializeVerKey decodes a wire-form verification key.
	RawDeserializeVerKey(b []byte) (VK, error)
	// RawSerializeSignature encodes sig to its fixed-size wire form.
	RawSerializeSignature(sig Sig) []byte
	// RawDeserializeSignature decodes a wire-form signature.
	RawDeserializeSignature(b []byte) (Sig, error)

	// ForgetSignKey explicitly erases sk's secret material.
	ForgetSignKey(sk SK)
}

// CompactAlgorithm extends Algorithm with the ability to reconstruct
// the signer's verification key directly from a signature and its
// period, without the verifier needing a verification key up front.
// This is what lets CompactSum signatures omit the on-path child
// verification key at every level.
type CompactAlgorithm[SK any, VK any, Sig any] interface {
	Algorithm[SK, VK, Sig]

	// ReconstructVerificationKey rebuilds the root verification key that
	// sig is valid under at period, using only data carried in sig.
	ReconstructVerificationKey(sig Sig, period int) (VK, error)
}
