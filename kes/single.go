// SPDX-License-Identifier: BSD-3-Clause

package kes

import (
	"crypto/subtle"

	"github.com/fractionestate/cardano-crypto-go/dsign"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

// SingleKes is the depth-0 base case: a KES algorithm with exactly one
// period, backed directly by a DSIGN algorithm.
type SingleKes[SK any, VK any, Sig any] struct {
	D dsign.UnsoundAlgorithm[SK, VK, Sig]
}

var _ Algorithm[struct{}, struct{}, struct{}] = SingleKes[struct{}, struct{}, struct{}]{}

// SeedSize implements Algorithm.
func (s SingleKes[SK, VK, Sig]) SeedSize() int { return s.D.SeedSize() }

// VerKeySize implements Algorithm.
func (s SingleKes[SK, VK, Sig]) VerKeySize() int { return s.D.VerKeySize() }

// SignatureSize implements Algorithm.
func (s SingleKes[SK, VK, Sig]) SignatureSize() int { return s.D.SignatureSize() }

// TotalPeriods implements Algorithm: a single-period key only ever
// signs at period 0.
func (s SingleKes[SK, VK, Sig]) TotalPeriods() int { return 1 }

// GenKey implements Algorithm.
func (s SingleKes[SK, VK, Sig]) GenKey(seed []byte) (SK, error) { return s.D.GenKey(seed) }

// DeriveVerificationKey implements Algorithm.
func (s SingleKes[SK, VK, Sig]) DeriveVerificationKey(sk SK) (VK, error) {
	return s.D.DeriveVerificationKey(sk)
}

// SignKES implements Algorithm.
func (s SingleKes[SK, VK, Sig]) SignKES(ctx []byte, msg []byte, period int, sk SK) (Sig, error) {
	var zero Sig
	if period != 0 {
		return zero, ErrPeriodOutOfRange
	}
	return s.D.Sign(ctx, msg, sk)
}

// VerifyKES implements Algorithm.
func (s SingleKes[SK, VK, Sig]) VerifyKES(ctx []byte, vk VK, period int, msg []byte, sig Sig) error {
	if period != 0 {
		return ErrPeriodOutOfRange
	}
	if err := s.D.Verify(ctx, vk, msg, sig); err != nil {
		return ErrVerifyFailed
	}
	return nil
}

// UpdateKES implements Algorithm: a single-period key can never evolve.
// The key is consumed either way, so its secret material is erased
// before reporting exhaustion.
func (s SingleKes[SK, VK, Sig]) UpdateKES(sk SK, period int) (SK, error) {
	var zero SK
	s.D.ForgetSignKey(sk)
	return zero, ErrKeyExhausted
}

// RawSerializeVerKey implements Algorithm.
func (s SingleKes[SK, VK, Sig]) RawSerializeVerKey(vk VK) []byte {
	return s.D.RawSerializeVerKey(vk)
}

// RawDeserializeVerKey implements Algorithm.
func (s SingleKes[SK, VK, Sig]) RawDeserializeVerKey(b []byte) (VK, error) {
	return s.D.RawDeserializeVerKey(b)
}

// RawSerializeSignature implements Algorithm.
func (s SingleKes[SK, VK, Sig]) RawSerializeSignature(sig Sig) []byte {
	return s.D.RawSerializeSignature(sig)
}

// RawDeserializeSignature implements Algorithm.
func (s SingleKes[SK, VK, Sig]) RawDeserializeSignature(b []byte) (Sig, error) {
	return s.D.RawDeserializeSignature(b)
}

// ForgetSignKey implements Algorithm.
func (s SingleKes[SK, VK, Sig]) ForgetSignKey(sk SK) { s.D.ForgetSignKey(sk) }

// CompactSingleSignature is a CompactSingleKes signature: the DSIGN
// signature together with the verification key it was produced under,
// so the root verification key can be reconstructed without a
// separate lookup.
type CompactSingleSignature[VK any, Sig any] struct {
	Sigma Sig
	VK    VK
}

// CompactSingleKes is CompactSumKes's depth-0 base case.
type CompactSingleKes[SK any, VK any, Sig any] struct {
	D dsign.UnsoundAlgorithm[SK, VK, Sig]
}

var _ CompactAlgorithm[struct{}, struct{}, CompactSingleSignature[struct{}, struct{}]] =
	CompactSingleKes[struct{}, struct{}, struct{}]{}

// SeedSize implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) SeedSize() int { return s.D.SeedSize() }

// VerKeySize implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) VerKeySize() int { return s.D.VerKeySize() }

// SignatureSize implements Algorithm: the DSIGN signature plus one
// embedded verification key.
func (s CompactSingleKes[SK, VK, Sig]) SignatureSize() int {
	return s.D.SignatureSize() + s.D.VerKeySize()
}

// TotalPeriods implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) TotalPeriods() int { return 1 }

// GenKey implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) GenKey(seed []byte) (SK, error) { return s.D.GenKey(seed) }

// DeriveVerificationKey implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) DeriveVerificationKey(sk SK) (VK, error) {
	return s.D.DeriveVerificationKey(sk)
}

// SignKES implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) SignKES(
	ctx []byte, msg []byte, period int, sk SK,
) (CompactSingleSignature[VK, Sig], error) {
	var zero CompactSingleSignature[VK, Sig]
	if period != 0 {
		return zero, ErrPeriodOutOfRange
	}
	vk, err := s.D.DeriveVerificationKey(sk)
	if err != nil {
		return zero, err
	}
	sigma, err := s.D.Sign(ctx, msg, sk)
	if err != nil {
		return zero, err
	}
	return CompactSingleSignature[VK, Sig]{Sigma: sigma, VK: vk}, nil
}

// VerifyKES implements Algorithm: checks the embedded verification key
// matches vk, then verifies the DSIGN signature under it.
func (s CompactSingleKes[SK, VK, Sig]) VerifyKES(
	ctx []byte, vk VK, period int, msg []byte, sig CompactSingleSignature[VK, Sig],
) error {
	if period != 0 {
		return ErrPeriodOutOfRange
	}
	if subtle.ConstantTimeCompare(s.D.RawSerializeVerKey(vk), s.D.RawSerializeVerKey(sig.VK)) != 1 {
		return ErrVerifyFailed
	}
	if err := s.D.Verify(ctx, sig.VK, msg, sig.Sigma); err != nil {
		return ErrVerifyFailed
	}
	return nil
}

// UpdateKES implements Algorithm. As with SingleKes, the key is
// consumed and erased before reporting exhaustion.
func (s CompactSingleKes[SK, VK, Sig]) UpdateKES(sk SK, period int) (SK, error) {
	var zero SK
	s.D.ForgetSignKey(sk)
	return zero, ErrKeyExhausted
}

// ReconstructVerificationKey implements CompactAlgorithm.
func (s CompactSingleKes[SK, VK, Sig]) ReconstructVerificationKey(
	sig CompactSingleSignature[VK, Sig], period int,
) (VK, error) {
	return sig.VK, nil
}

// RawSerializeVerKey implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) RawSerializeVerKey(vk VK) []byte {
	return s.D.RawSerializeVerKey(vk)
}

// RawDeserializeVerKey implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) RawDeserializeVerKey(b []byte) (VK, error) {
	return s.D.RawDeserializeVerKey(b)
}

// RawSerializeSignature implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) RawSerializeSignature(sig CompactSingleSignature[VK, Sig]) []byte {
	out := make([]byte, s.SignatureSize())
	sink := serialize.NewSliceSink(out)
	_ = sink.WriteBytes(s.D.RawSerializeSignature(sig.Sigma))
	_ = sink.WriteBytes(s.D.RawSerializeVerKey(sig.VK))
	return out
}

// RawDeserializeSignature implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) RawDeserializeSignature(
	b []byte,
) (CompactSingleSignature[VK, Sig], error) {
	var zero CompactSingleSignature[VK, Sig]
	sigSize := s.D.SignatureSize()
	vkSize := s.D.VerKeySize()
	if len(b) != sigSize+vkSize {
		return zero, ErrInvalidEncoding
	}
	src := serialize.NewSliceSource(b)
	sigmaBytes, err := src.ReadBytesExact(sigSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	sigma, err := s.D.RawDeserializeSignature(sigmaBytes)
	if err != nil {
		return zero, err
	}
	vkBytes, err := src.ReadBytesExact(vkSize)
	if err != nil {
		return zero, ErrInvalidEncoding
	}
	vk, err := s.D.RawDeserializeVerKey(vkBytes)
	if err != nil {
		return zero, err
	}
	return CompactSingleSignature[VK, Sig]{Sigma: sigma, VK: vk}, nil
}

// ForgetSignKey implements Algorithm.
func (s CompactSingleKes[SK, VK, Sig]) ForgetSignKey(sk SK) { s.D.ForgetSignKey(sk) }
