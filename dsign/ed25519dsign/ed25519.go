// SPDX-License-Identifier: BSD-3-Clause

// Package ed25519dsign implements the Ed25519 DSIGN algorithm: RFC 8032
// signing with an mlocked compound in-memory signing key (32-byte seed
// plus its derived 32-byte public key), and a 32-byte (seed-only) wire
// form that re-derives the public key on deserialize.
//
// Signing and verification are built directly on filippo.io/edwards25519
// scalar/point arithmetic rather than delegating to crypto/ed25519's
// sign/verify internals, so the seed never has to leave its locked
// buffer in the shape crypto/ed25519's 64-byte PrivateKey expects.
package ed25519dsign

import (
	"crypto/ed25519"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/fractionestate/cardano-crypto-go/dsign"
	"github.com/fractionestate/cardano-crypto-go/mlock"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

const (
	// SeedSize is the byte length of an Ed25519 seed.
	SeedSize = ed25519.SeedSize
	// VerKeySize is the byte length of an Ed25519 verification key.
	VerKeySize = ed25519.PublicKeySize
	// SignatureSize is the byte length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
	// signKeyMemSize is the mlocked in-memory signing key size: seed || public key.
	signKeyMemSize = SeedSize + VerKeySize
)

var (
	errBadSeed      = errors.New("ed25519dsign: invalid seed length")
	errBadSignKey   = errors.New("ed25519dsign: invalid signing key encoding")
	errBadVerKey    = errors.New("ed25519dsign: invalid verification key encoding")
	errBadSignature = errors.New("ed25519dsign: invalid signature encoding")
)

// SignKey is the mlocked compound in-memory signing key: the 32-byte
// seed and its derived 32-byte public key, held in a single locked
// buffer.
type SignKey struct {
	buf *mlock.MLockedBytes // [seed(32) || public(32)]
}

func (k SignKey) seed() []byte   { return k.buf.Bytes()[:SeedSize] }
func (k SignKey) pubKey() []byte { return k.buf.Bytes()[SeedSize:] }

// VerKey is an Ed25519 verification key.
type VerKey struct {
	b [VerKeySize]byte
}

// Bytes returns the verification key's compressed-point encoding.
func (v VerKey) Bytes() []byte {
	out := make([]byte, VerKeySize)
	copy(out, v.b[:])
	return out
}

// Signature is an Ed25519 signature (R || S).
type Signature struct {
	b [SignatureSize]byte
}

// Bytes returns the signature's wire encoding.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out, s.b[:])
	return out
}

var (
	_ serialize.DirectSerializable             = VerKey{}
	_ serialize.DirectSerializable             = Signature{}
	_ serialize.DirectDeserializable[VerKey]    = (*VerKey)(nil)
	_ serialize.DirectDeserializable[Signature] = (*Signature)(nil)
)

// DirectSerialize writes the verification key straight to w.
func (v VerKey) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(v.b[:])
}

// DirectDeserialize reads a verification key straight off r.
func (*VerKey) DirectDeserialize(r serialize.ByteSource) (VerKey, error) {
	var vk VerKey
	b, err := r.ReadBytesExact(VerKeySize)
	if err != nil {
		return vk, errBadVerKey
	}
	copy(vk.b[:], b)
	return vk, nil
}

// DirectSerialize writes the signature straight to w.
func (s Signature) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(s.b[:])
}

// DirectDeserialize reads a signature straight off r.
func (*Signature) DirectDeserialize(r serialize.ByteSource) (Signature, error) {
	var sig Signature
	b, err := r.ReadBytesExact(SignatureSize)
	if err != nil {
		return sig, errBadSignature
	}
	copy(sig.b[:], b)
	return sig, nil
}

// Algorithm implements dsign.UnsoundAlgorithm[SignKey, VerKey, Signature].
type Algorithm struct{}

var _ dsign.UnsoundAlgorithm[SignKey, VerKey, Signature] = Algorithm{}

// SeedSize implements dsign.Algorithm.
func (Algorithm) SeedSize() int { return SeedSize }

// VerKeySize implements dsign.Algorithm.
func (Algorithm) VerKeySize() int { return VerKeySize }

// SignKeySize implements dsign.Algorithm (wire size: seed only).
func (Algorithm) SignKeySize() int { return SeedSize }

// SignatureSize implements dsign.Algorithm.
func (Algorithm) SignatureSize() int { return SignatureSize }

// extendedScalarAndPrefix derives the clamped signing scalar and the
// nonce-derivation prefix from a 32-byte seed, per RFC 8032 §5.1.5 step 1.
func extendedScalarAndPrefix(seedBytes []byte) (*edwards25519.Scalar, []byte) {
	h := sha512.Sum512(seedBytes)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		// Clamping always yields a valid scalar; a failure here would
		// indicate a broken edwards25519 build, not bad input.
		panic("ed25519dsign: clamping failed: " + err.Error())
	}
	prefix := make([]byte, 32)
	copy(prefix, h[32:])
	return s, prefix
}

// GenKey implements dsign.Algorithm.
func (Algorithm) GenKey(seedBytes []byte) (SignKey, error) {
	if len(seedBytes) != SeedSize {
		return SignKey{}, errBadSeed
	}

	scalar, _ := extendedScalarAndPrefix(seedBytes)
	pub := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar).Bytes()

	buf, err := mlock.NewMLockedBytes(signKeyMemSize)
	if err != nil {
		return SignKey{}, err
	}
	copy(buf.Bytes()[:SeedSize], seedBytes)
	copy(buf.Bytes()[SeedSize:], pub)
	return SignKey{buf: buf}, nil
}

// DeriveVerificationKey implements dsign.Algorithm.
func (Algorithm) DeriveVerificationKey(sk SignKey) (VerKey, error) {
	var vk VerKey
	copy(vk.b[:], sk.pubKey())
	return vk, nil
}

// Sign implements dsign.Algorithm: deterministic RFC 8032 Ed25519
// signing. ctx is folded into the message as a domain-separated prefix
// (Cardano's DSIGN layer does not use Ed25519ph/ctx-signatures; ctx is
// simply prepended so callers can bind a context without a second
// algorithm variant).
func (Algorithm) Sign(ctx []byte, msg []byte, sk SignKey) (Signature, error) {
	scalar, prefix := extendedScalarAndPrefix(sk.seed())
	pub := sk.pubKey()

	mh := sha512.New()
	mh.Write(prefix)
	mh.Write(ctx)
	mh.Write(msg)
	digest1 := mh.Sum(nil)

	r, err := edwards25519.NewScalar().SetUniformBytes(digest1)
	if err != nil {
		panic("ed25519dsign: nonce reduction failed: " + err.Error())
	}
	R := edwards25519.NewIdentityPoint().ScalarBaseMult(r)
	RBytes := R.Bytes()

	kh := sha512.New()
	kh.Write(RBytes)
	kh.Write(pub)
	kh.Write(ctx)
	kh.Write(msg)
	digest2 := kh.Sum(nil)

	k, err := edwards25519.NewScalar().SetUniformBytes(digest2)
	if err != nil {
		panic("ed25519dsign: challenge reduction failed: " + err.Error())
	}

	S := edwards25519.NewScalar().MultiplyAdd(k, scalar, r)

	var sig Signature
	copy(sig.b[:32], RBytes)
	copy(sig.b[32:], S.Bytes())
	return sig, nil
}

// Verify implements dsign.Algorithm.
func (Algorithm) Verify(ctx []byte, vk VerKey, msg []byte, sig Signature) error {
	if sig.b[63]&0xe0 != 0 {
		return fmt.Errorf("%w: non-canonical S high bits", dsign.ErrVerifyFailed)
	}

	A, err := edwards25519.NewIdentityPoint().SetBytes(vk.b[:])
	if err != nil {
		return fmt.Errorf("%w: %v", dsign.ErrPointDecodeFailed, err)
	}
	negA := edwards25519.NewIdentityPoint().Negate(A)

	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig.b[32:])
	if err != nil {
		return fmt.Errorf("%w: %v", dsign.ErrScalarOutOfRange, err)
	}

	h := sha512.New()
	h.Write(sig.b[:32])
	h.Write(vk.b[:])
	h.Write(ctx)
	h.Write(msg)
	digest := h.Sum(nil)

	k, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		panic("ed25519dsign: challenge reduction failed: " + err.Error())
	}

	Rcheck := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(k, negA, S)
	if subtle.ConstantTimeCompare(Rcheck.Bytes(), sig.b[:32]) != 1 {
		return dsign.ErrVerifyFailed
	}
	return nil
}

// RawSerializeVerKey implements dsign.Algorithm.
func (Algorithm) RawSerializeVerKey(vk VerKey) []byte {
	out := make([]byte, VerKeySize)
	_ = vk.DirectSerialize(serialize.NewSliceSink(out))
	return out
}

// RawDeserializeVerKey implements dsign.Algorithm.
func (Algorithm) RawDeserializeVerKey(b []byte) (VerKey, error) {
	if len(b) != VerKeySize {
		return VerKey{}, errBadVerKey
	}
	return new(VerKey).DirectDeserialize(serialize.NewSliceSource(b))
}

// RawSerializeSignature implements dsign.Algorithm.
func (Algorithm) RawSerializeSignature(sig Signature) []byte {
	out := make([]byte, SignatureSize)
	_ = sig.DirectSerialize(serialize.NewSliceSink(out))
	return out
}

// RawDeserializeSignature implements dsign.Algorithm.
func (Algorithm) RawDeserializeSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, errBadSignature
	}
	return new(Signature).DirectDeserialize(serialize.NewSliceSource(b))
}

// RawSerializeSignKey implements dsign.UnsoundAlgorithm (wire: seed
// only). The seed is written from the locked buffer through a SliceSink
// with no intermediate copy of the secret.
func (Algorithm) RawSerializeSignKey(sk SignKey) []byte {
	out := make([]byte, SeedSize)
	_ = serialize.NewSliceSink(out).WriteBytes(sk.seed())
	return out
}

// RawDeserializeSignKeyM implements dsign.UnsoundAlgorithm: re-derives
// the public key and stores the compound form in mlocked memory.
func (a Algorithm) RawDeserializeSignKeyM(b []byte) (SignKey, error) {
	if len(b) != SeedSize {
		return SignKey{}, errBadSignKey
	}
	return a.GenKey(b)
}

// ForgetSignKey implements dsign.Algorithm.
func (Algorithm) ForgetSignKey(sk SignKey) {
	if sk.buf != nil {
		_ = sk.buf.Destroy()
	}
}
