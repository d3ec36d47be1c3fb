// SPDX-License-Identifier: BSD-3-Clause

package kes

import (
	"crypto/subtle"
	"fmt"

	"github.com/fractionestate/cardano-crypto-go/mlock"
	"github.com/fractionestate/cardano-crypto-go/seed"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

// SumSignKey is the signing key shared by SumKes and CompactSumKes: the
// active child's signing key, the still-unexpanded right subtree seed
// (nil once the tree has evolved past the midpoint), and both
// children's verification keys.
type SumSignKey[CSK any] struct {
	current   CSK
	rightSeed *mlock.MLockedBytes // nil after the midpoint transition
	vk0, vk1  []byte
}

// SumVerKey is a SumKes/CompactSumKes verification key: the hash of
// both children's verification keys.
type SumVerKey struct {
	b [32]byte // Blake2b256 output size
}

// Bytes returns the verification key's wire encoding.
func (v SumVerKey) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, v.b[:])
	return out
}

var (
	_ serialize.DirectSerializable              = SumVerKey{}
	_ serialize.DirectDeserializable[SumVerKey] = (*SumVerKey)(nil)
)

// DirectSerialize writes the verification key straight to w.
func (v SumVerKey) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(v.b[:])
}

// DirectDeserialize reads a verification key straight off r.
func (*SumVerKey) DirectDeserialize(r serialize.ByteSource) (SumVerKey, error) {
	var vk SumVerKey
	b, err := r.ReadBytesExact(len(vk.b))
	if err != nil {
		return vk, ErrInvalidEncoding
	}
	copy(vk.b[:], b)
	return vk, nil
}

// SumSignature is a SumKes signature: the active child's signature
// plus both children's verification keys.
type SumSignature[CSig any] struct {
	Sigma    CSig
	VK0, VK1 []byte
}

// SumKes recursively composes a depth-N KES algorithm from a depth-(N-1)
// child algorithm, doubling the number of periods at each level. Hash is
// Blake2b256 for every alias this module ships; it is stored as an
// interface value rather than as a fourth type parameter, which keeps
// instantiation at each depth to three type arguments instead of four.
type SumKes[CSK any, CVK any, CSig any] struct {
	Child Algorithm[CSK, CVK, CSig]
	Hash  seed.HashAlgorithm
}

var _ Algorithm[SumSignKey[struct{}], SumVerKey, SumSignature[struct{}]] =
	SumKes[struct{}, struct{}, struct{}]{}

// SeedSize implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) SeedSize() int { return s.Child.SeedSize() }

// VerKeySize implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) VerKeySize() int { return s.Hash.OutputSize() }

// SignatureSize implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) SignatureSize() int {
	return s.Child.SignatureSize() + 2*s.Child.VerKeySize()
}

// TotalPeriods implements Algorithm: double the child's period count.
func (s SumKes[CSK, CVK, CSig]) TotalPeriods() int { return 2 * s.Child.TotalPeriods() }

// GenKey implements Algorithm: splits seed into the left and right
// subtree seeds, immediately generates the left child's signing key,
// and generates+discards the right child's signing key just long
// enough to capture its verification key (the right subtree itself
// stays dormant as an mlocked seed until the midpoint transition).
func (s SumKes[CSK, CVK, CSig]) GenKey(seedBytes []byte) (SumSignKey[CSK], error) {
	var zero SumSignKey[CSK]

	left, right := seed.ExpandSeedWith(s.Hash, seedBytes)
	defer func() {
		for i := range left {
			left[i] = 0
		}
		for i := range right {
			right[i] = 0
		}
	}()

	skLeft, err := s.Child.GenKey(left)
	if err != nil {
		return zero, fmt.Errorf("kes: left child GenKey: %w", err)
	}
	vkLeft, err := s.Child.DeriveVerificationKey(skLeft)
	if err != nil {
		return zero, fmt.Errorf("kes: left child DeriveVerificationKey: %w", err)
	}

	skRight, err := s.Child.GenKey(right)
	if err != nil {
		return zero, fmt.Errorf("kes: right child GenKey: %w", err)
	}
	vkRight, err := s.Child.DeriveVerificationKey(skRight)
	if err != nil {
		return zero, fmt.Errorf("kes: right child DeriveVerificationKey: %w", err)
	}
	s.Child.ForgetSignKey(skRight)

	rightSeedBuf, err := mlock.NewMLockedBytes(len(right))
	if err != nil {
		return zero, err
	}
	copy(rightSeedBuf.Bytes(), right)

	return SumSignKey[CSK]{
		current:   skLeft,
		rightSeed: rightSeedBuf,
		vk0:       s.Child.RawSerializeVerKey(vkLeft),
		vk1:       s.Child.RawSerializeVerKey(vkRight),
	}, nil
}

// DeriveVerificationKey implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) DeriveVerificationKey(sk SumSignKey[CSK]) (SumVerKey, error) {
	var vk SumVerKey
	copy(vk.b[:], s.Hash.HashConcat(sk.vk0, sk.vk1))
	return vk, nil
}

// SignKES implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) SignKES(
	ctx []byte, msg []byte, period int, sk SumSignKey[CSK],
) (SumSignature[CSig], error) {
	var zero SumSignature[CSig]
	t := s.Child.TotalPeriods()

	if (sk.rightSeed != nil && period >= t) || (sk.rightSeed == nil && period < t) {
		return zero, ErrPeriodOutOfRange
	}

	childPeriod := period
	if period >= t {
		childPeriod = period - t
	}
	sigma, err := s.Child.SignKES(ctx, msg, childPeriod, sk.current)
	if err != nil {
		return zero, err
	}
	return SumSignature[CSig]{Sigma: sigma, VK0: sk.vk0, VK1: sk.vk1}, nil
}

// VerifyKES implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) VerifyKES(
	ctx []byte, vk SumVerKey, period int, msg []byte, sig SumSignature[CSig],
) error {
	recomputed := s.Hash.HashConcat(sig.VK0, sig.VK1)
	if subtle.ConstantTimeCompare(recomputed, vk.b[:]) != 1 {
		return ErrVerifyFailed
	}

	t := s.Child.TotalPeriods()
	var childVKBytes []byte
	childPeriod := period
	if period < t {
		childVKBytes = sig.VK0
	} else {
		childVKBytes = sig.VK1
		childPeriod = period - t
	}

	childVK, err := s.Child.RawDeserializeVerKey(childVKBytes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if err := s.Child.VerifyKES(ctx, childVK, childPeriod, msg, sig.Sigma); err != nil {
		return ErrVerifyFailed
	}
	return nil
}

// UpdateKES implements Algorithm: evolves the active child in place
// while still left of the midpoint, or switches to (and discards the
// seed for) the right child exactly at the midpoint.
func (s SumKes[CSK, CVK, CSig]) UpdateKES(sk SumSignKey[CSK], period int) (SumSignKey[CSK], error) {
	var zero SumSignKey[CSK]
	t := s.Child.TotalPeriods()
	total := 2 * t

	if period+1 >= total {
		s.ForgetSignKey(sk)
		return zero, ErrKeyExhausted
	}

	if period+1 == t {
		// Midpoint transition: the left child has signed its last
		// period; materialize the right child from its dormant seed
		// and forget the left child and the now-consumed seed.
		skRight, err := s.Child.GenKey(sk.rightSeed.Bytes())
		if err != nil {
			return zero, fmt.Errorf("kes: right child GenKey at midpoint: %w", err)
		}
		s.Child.ForgetSignKey(sk.current)
		if err := sk.rightSeed.Destroy(); err != nil {
			return zero, err
		}
		return SumSignKey[CSK]{current: skRight, rightSeed: nil, vk0: sk.vk0, vk1: sk.vk1}, nil
	}

	childPeriod := period
	if period >= t {
		childPeriod = period - t
	}
	newCurrent, err := s.Child.UpdateKES(sk.current, childPeriod)
	if err != nil {
		return zero, err
	}
	return SumSignKey[CSK]{current: newCurrent, rightSeed: sk.rightSeed, vk0: sk.vk0, vk1: sk.vk1}, nil
}

// RawSerializeVerKey implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) RawSerializeVerKey(vk SumVerKey) []byte {
	out := make([]byte, s.Hash.OutputSize())
	_ = vk.DirectSerialize(serialize.NewSliceSink(out))
	return out
}

// RawDeserializeVerKey implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) RawDeserializeVerKey(b []byte) (SumVerKey, error) {
	if len(b) != s.Hash.OutputSize() {
		return SumVerKey{}, ErrInvalidEncoding
	}
	return new(SumVerKey).DirectDeserialize(serialize.NewSliceSource(b))
}

// RawSerializeSignature implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) RawSerializeSignature(sig SumSignature[CSig]) []byte {
	out := make([]byte, s.SignatureSize())
	sink := serialize.NewSliceSink(out)
	_ = sink.WriteBytes(s.Child.RawSerializeSignature(sig.Sigma))
	_ = sink.WriteBytes(sig.VK0)
	_ = sink.WriteBytes(sig.VK1)
	return out
}

// RawDeserializeSignature implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) RawDeserializeSignature(b []byte) (SumSignature[CSig], error) {
	var zero SumSignature[CSig]
	sigSize := s.Child.SignatureSize()
	vkSize := s.Child.VerKeySize()
	if len(b) != sigSize+2*vkSize {
		return zero, ErrInvalidEncoding
	}
	src := serialize.NewSliceSource(b)
	sigmaBytes, err := src.ReadBytesExact(sigSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	sigma, err := s.Child.RawDeserializeSignature(sigmaBytes)
	if err != nil {
		return zero, err
	}
	vk0Bytes, err := src.ReadBytesExact(vkSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	vk1Bytes, err := src.ReadBytesExact(vkSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	vk0 := append([]byte{}, vk0Bytes...)
	vk1 := append([]byte{}, vk1Bytes...)
	return SumSignature[CSig]{Sigma: sigma, VK0: vk0, VK1: vk1}, nil
}

// ForgetSignKey implements Algorithm.
func (s SumKes[CSK, CVK, CSig]) ForgetSignKey(sk SumSignKey[CSK]) {
	s.Child.ForgetSignKey(sk.current)
	if sk.rightSeed != nil {
		_ = sk.rightSeed.Destroy()
	}
}
