// SPDX-License-Identifier: BSD-3-Clause

package kes

import (
	"crypto/subtle"
	"fmt"

	"github.com/fractionestate/cardano-crypto-go/mlock"
	"github.com/fractionestate/cardano-crypto-go/seed"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

// CompactSumSignature is a CompactSumKes signature: the active child's
// (compact) signature plus only the *inactive* sibling's verification
// key. The active child's own verification key is reconstructed
// recursively from Sigma via ReconstructVerificationKey, which is what
// keeps compact signatures from growing with both children's VKs at
// every level.
type CompactSumSignature[CSig any] struct {
	Sigma   CSig
	OtherVK []byte
}

// CompactSumKes is the compact counterpart to SumKes: it shares
// SumSignKey's layout and key-generation/evolution logic, but signs
// and verifies through a CompactAlgorithm child and omits the active
// side's verification key from the signature.
type CompactSumKes[CSK any, CVK any, CSig any] struct {
	Child CompactAlgorithm[CSK, CVK, CSig]
	Hash  seed.HashAlgorithm
}

var _ CompactAlgorithm[SumSignKey[struct{}], SumVerKey, CompactSumSignature[struct{}]] =
	CompactSumKes[struct{}, struct{}, struct{}]{}

// SeedSize implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) SeedSize() int { return s.Child.SeedSize() }

// VerKeySize implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) VerKeySize() int { return s.Hash.OutputSize() }

// SignatureSize implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) SignatureSize() int {
	return s.Child.SignatureSize() + s.Child.VerKeySize()
}

// TotalPeriods implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) TotalPeriods() int { return 2 * s.Child.TotalPeriods() }

// GenKey implements Algorithm. Identical to SumKes.GenKey in structure;
// duplicated rather than shared because the two types' Child fields
// carry different (if overlapping) interface types.
func (s CompactSumKes[CSK, CVK, CSig]) GenKey(seedBytes []byte) (SumSignKey[CSK], error) {
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
func (s CompactSumKes[CSK, CVK, CSig]) DeriveVerificationKey(sk SumSignKey[CSK]) (SumVerKey, error) {
	var vk SumVerKey
	copy(vk.b[:], s.Hash.HashConcat(sk.vk0, sk.vk1))
	return vk, nil
}

// SignKES implements Algorithm: signs through the child and attaches
// only the currently-inactive sibling's verification key.
func (s CompactSumKes[CSK, CVK, CSig]) SignKES(
	ctx []byte, msg []byte, period int, sk SumSignKey[CSK],
) (CompactSumSignature[CSig], error) {
	var zero CompactSumSignature[CSig]
	t := s.Child.TotalPeriods()

	if (sk.rightSeed != nil && period >= t) || (sk.rightSeed == nil && period < t) {
		return zero, ErrPeriodOutOfRange
	}

	childPeriod := period
	otherVK := sk.vk1
	if period >= t {
		childPeriod = period - t
		otherVK = sk.vk0
	}
	sigma, err := s.Child.SignKES(ctx, msg, childPeriod, sk.current)
	if err != nil {
		return zero, err
	}
	return CompactSumSignature[CSig]{Sigma: sigma, OtherVK: otherVK}, nil
}

// VerifyKES implements Algorithm: reconstructs the active child's
// verification key from the signature itself, recombines it with the
// carried sibling key, and checks the result hashes to vk before
// verifying the child signature.
func (s CompactSumKes[CSK, CVK, CSig]) VerifyKES(
	ctx []byte, vk SumVerKey, period int, msg []byte, sig CompactSumSignature[CSig],
) error {
	t := s.Child.TotalPeriods()
	childPeriod := period
	if period >= t {
		childPeriod = period - t
	}

	childVK, err := s.Child.ReconstructVerificationKey(sig.Sigma, childPeriod)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	childVKBytes := s.Child.RawSerializeVerKey(childVK)

	var vk0, vk1 []byte
	if period < t {
		vk0, vk1 = childVKBytes, sig.OtherVK
	} else {
		vk0, vk1 = sig.OtherVK, childVKBytes
	}
	recomputed := s.Hash.HashConcat(vk0, vk1)
	if subtle.ConstantTimeCompare(recomputed, vk.b[:]) != 1 {
		return ErrVerifyFailed
	}

	if err := s.Child.VerifyKES(ctx, childVK, childPeriod, msg, sig.Sigma); err != nil {
		return ErrVerifyFailed
	}
	return nil
}

// UpdateKES implements Algorithm. Identical in structure to
// SumKes.UpdateKES.
func (s CompactSumKes[CSK, CVK, CSig]) UpdateKES(sk SumSignKey[CSK], period int) (SumSignKey[CSK], error) {
	var zero SumSignKey[CSK]
	t := s.Child.TotalPeriods()
	total := 2 * t

	if period+1 >= total {
		s.ForgetSignKey(sk)
		return zero, ErrKeyExhausted
	}

	if period+1 == t {
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

// ReconstructVerificationKey implements CompactAlgorithm.
func (s CompactSumKes[CSK, CVK, CSig]) ReconstructVerificationKey(
	sig CompactSumSignature[CSig], period int,
) (SumVerKey, error) {
	t := s.Child.TotalPeriods()
	childPeriod := period
	if period >= t {
		childPeriod = period - t
	}
	childVK, err := s.Child.ReconstructVerificationKey(sig.Sigma, childPeriod)
	if err != nil {
		var zero SumVerKey
		return zero, err
	}
	childVKBytes := s.Child.RawSerializeVerKey(childVK)

	var vk0, vk1 []byte
	if period < t {
		vk0, vk1 = childVKBytes, sig.OtherVK
	} else {
		vk0, vk1 = sig.OtherVK, childVKBytes
	}
	var vk SumVerKey
	copy(vk.b[:], s.Hash.HashConcat(vk0, vk1))
	return vk, nil
}

// RawSerializeVerKey implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) RawSerializeVerKey(vk SumVerKey) []byte {
	out := make([]byte, s.Hash.OutputSize())
	_ = vk.DirectSerialize(serialize.NewSliceSink(out))
	return out
}

// RawDeserializeVerKey implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) RawDeserializeVerKey(b []byte) (SumVerKey, error) {
	if len(b) != s.Hash.OutputSize() {
		return SumVerKey{}, ErrInvalidEncoding
	}
	return new(SumVerKey).DirectDeserialize(serialize.NewSliceSource(b))
}

// RawSerializeSignature implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) RawSerializeSignature(sig CompactSumSignature[CSig]) []byte {
	out := make([]byte, s.SignatureSize())
	sink := serialize.NewSliceSink(out)
	_ = sink.WriteBytes(s.Child.RawSerializeSignature(sig.Sigma))
	_ = sink.WriteBytes(sig.OtherVK)
	return out
}

// RawDeserializeSignature implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) RawDeserializeSignature(b []byte) (CompactSumSignature[CSig], error) {
	var zero CompactSumSignature[CSig]
	sigSize := s.Child.SignatureSize()
	vkSize := s.Child.VerKeySize()
	if len(b) != sigSize+vkSize {
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
	otherVKBytes, err := src.ReadBytesExact(vkSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	otherVK := append([]byte{}, otherVKBytes...)
	return CompactSumSignature[CSig]{Sigma: sigma, OtherVK: otherVK}, nil
}

// ForgetSignKey implements Algorithm.
func (s CompactSumKes[CSK, CVK, CSig]) ForgetSignKey(sk SumSignKey[CSK]) {
	s.Child.ForgetSignKey(sk.current)
	if sk.rightSeed != nil {
		_ = sk.rightSeed.Destroy()
	}
}
