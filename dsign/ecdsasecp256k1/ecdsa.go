// SPDX-License-Identifier: BSD-3-Clause

// Package ecdsasecp256k1 implements the ECDSA-secp256k1 DSIGN
// algorithm: RFC 6979 deterministic nonce generation, low-S signature
// normalization on sign, and rejection of non-canonical (high-S)
// signatures on verify.
//
// Curve and field arithmetic is sourced from
// github.com/decred/dcrd/dcrec/secp256k1/v4 and its ecdsa subpackage
// (which already enforces low-S on Sign per BIP 0062); fixed-size
// r‖s wire (de)serialization is implemented on top of its DER form
// using golang.org/x/crypto/cryptobyte.
package ecdsasecp256k1

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/fractionestate/cardano-crypto-go/dsign"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

const (
	// SeedSize is the byte length GenKey expects (a raw secp256k1 scalar).
	SeedSize = 32
	// VerKeySize is the SEC1-compressed verification key length.
	VerKeySize = 33
	// SignatureSize is the fixed-size r‖s signature encoding length.
	SignatureSize = 64
	scalarSize    = 32
)

var (
	errBadSeed      = errors.New("ecdsasecp256k1: invalid seed length")
	errBadVerKey    = errors.New("ecdsasecp256k1: invalid verification key encoding")
	errBadSignature = errors.New("ecdsasecp256k1: invalid signature encoding")

	// curveOrder is the secp256k1 group order N.
	curveOrder, _ = new(big.Int).SetString(
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	// halfOrder is N/2; any signature with s > halfOrder is non-canonical
	// and is rejected by Verify rather than silently accepted.
	halfOrder = new(big.Int).Rsh(curveOrder, 1)
)

// SignKey is a secp256k1 ECDSA signing key.
type SignKey struct {
	priv *secp256k1.PrivateKey
}

// VerKey is a secp256k1 ECDSA verification key (SEC1 compressed form).
type VerKey struct {
	pub *secp256k1.PublicKey
}

// Bytes returns the SEC1-compressed encoding.
func (v VerKey) Bytes() []byte {
	if v.pub == nil {
		return make([]byte, VerKeySize)
	}
	return v.pub.SerializeCompressed()
}

// Signature is a fixed-size r‖s ECDSA signature.
type Signature struct {
	r, s [scalarSize]byte
}

// Bytes returns the fixed 64-byte r‖s encoding.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out[:scalarSize], s.r[:])
	copy(out[scalarSize:], s.s[:])
	return out
}

var (
	_ serialize.DirectSerializable             = VerKey{}
	_ serialize.DirectSerializable             = Signature{}
	_ serialize.DirectDeserializable[VerKey]    = (*VerKey)(nil)
	_ serialize.DirectDeserializable[Signature] = (*Signature)(nil)
)

// DirectSerialize writes the SEC1-compressed verification key to w.
func (v VerKey) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(v.Bytes())
}

// DirectDeserialize reads and validates a SEC1-compressed verification
// key off r.
func (*VerKey) DirectDeserialize(r serialize.ByteSource) (VerKey, error) {
	b, err := r.ReadBytesExact(VerKeySize)
	if err != nil {
		return VerKey{}, errBadVerKey
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return VerKey{}, fmt.Errorf("%w: %v", dsign.ErrPointDecodeFailed, err)
	}
	return VerKey{pub: pub}, nil
}

// DirectSerialize writes r then s to w as two fixed 32-byte fields.
func (s Signature) DirectSerialize(w serialize.ByteSink) error {
	if err := w.WriteBytes(s.r[:]); err != nil {
		return err
	}
	return w.WriteBytes(s.s[:])
}

// DirectDeserialize reads the two fixed 32-byte scalar fields off r.
func (*Signature) DirectDeserialize(r serialize.ByteSource) (Signature, error) {
	var sig Signature
	rb, err := r.ReadBytesExact(scalarSize)
	if err != nil {
		return sig, errBadSignature
	}
	sb, err := r.ReadBytesExact(scalarSize)
	if err != nil {
		return sig, errBadSignature
	}
	copy(sig.r[:], rb)
	copy(sig.s[:], sb)
	return sig, nil
}

// Algorithm implements dsign.UnsoundAlgorithm[SignKey, VerKey, Signature].
type Algorithm struct{}

var _ dsign.UnsoundAlgorithm[SignKey, VerKey, Signature] = Algorithm{}

// SeedSize implements dsign.Algorithm.
func (Algorithm) SeedSize() int { return SeedSize }

// VerKeySize implements dsign.Algorithm.
func (Algorithm) VerKeySize() int { return VerKeySize }

// SignKeySize implements dsign.Algorithm.
func (Algorithm) SignKeySize() int { return SeedSize }

// SignatureSize implements dsign.Algorithm.
func (Algorithm) SignatureSize() int { return SignatureSize }

// GenKey implements dsign.Algorithm. The seed is interpreted directly
// as the signing scalar; callers are expected to supply uniformly
// random 32-byte seed material (the seed-derivation layer, not this
// package, is responsible for rejection sampling against the curve
// order).
func (Algorithm) GenKey(seedBytes []byte) (SignKey, error) {
	if len(seedBytes) != SeedSize {
		return SignKey{}, errBadSeed
	}
	priv := secp256k1.PrivKeyFromBytes(seedBytes)
	return SignKey{priv: priv}, nil
}

// DeriveVerificationKey implements dsign.Algorithm.
func (Algorithm) DeriveVerificationKey(sk SignKey) (VerKey, error) {
	return VerKey{pub: sk.priv.PubKey()}, nil
}

func digestFor(ctx, msg []byte) []byte {
	h := sha256.New()
	h.Write(ctx)
	h.Write(msg)
	return h.Sum(nil)
}

// Sign implements dsign.Algorithm: RFC 6979 deterministic nonce
// generation via decred's ecdsa.Sign (which additionally forces s to
// its low-order representative per BIP 0062), re-encoded to the fixed
// r‖s wire form.
func (Algorithm) Sign(ctx []byte, msg []byte, sk SignKey) (Signature, error) {
	digest := digestFor(ctx, msg)
	sig := ecdsa.Sign(sk.priv, digest)

	r, s, err := splitDER(sig.Serialize())
	if err != nil {
		return Signature{}, fmt.Errorf("ecdsasecp256k1: sign produced unparseable DER: %w", err)
	}

	var out Signature
	copyScalar(out.r[:], r)
	copyScalar(out.s[:], s)
	return out, nil
}

// Verify implements dsign.Algorithm. High-S signatures are rejected as
// non-canonical before the underlying curve check runs.
func (Algorithm) Verify(ctx []byte, vk VerKey, msg []byte, sig Signature) error {
	sBig := new(big.Int).SetBytes(sig.s[:])
	if sBig.Cmp(halfOrder) > 0 {
		return fmt.Errorf("%w: s exceeds curve_order/2", dsign.ErrNonCanonicalSignature)
	}
	rBig := new(big.Int).SetBytes(sig.r[:])
	if rBig.Sign() == 0 || sBig.Sign() == 0 {
		return fmt.Errorf("%w: zero scalar component", dsign.ErrScalarOutOfRange)
	}

	der, err := buildDER(sig.r[:], sig.s[:])
	if err != nil {
		return fmt.Errorf("%w: %v", dsign.ErrInvalidEncoding, err)
	}
	parsed, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return fmt.Errorf("%w: %v", dsign.ErrInvalidEncoding, err)
	}

	digest := digestFor(ctx, msg)
	if !parsed.Verify(digest, vk.pub) {
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

// RawSerializeSignKey implements dsign.UnsoundAlgorithm.
func (Algorithm) RawSerializeSignKey(sk SignKey) []byte {
	return sk.priv.Serialize()
}

// RawDeserializeSignKeyM implements dsign.UnsoundAlgorithm. The key is
// held in an ordinary heap-allocated secp256k1.PrivateKey, not in an
// mlock buffer.
func (a Algorithm) RawDeserializeSignKeyM(b []byte) (SignKey, error) {
	return a.GenKey(b)
}

// ForgetSignKey implements dsign.Algorithm.
func (Algorithm) ForgetSignKey(sk SignKey) {
	if sk.priv != nil {
		sk.priv.Zero()
	}
}

// ParseASN1Signature decodes a DER-encoded ECDSA signature (SEQUENCE {
// INTEGER r, INTEGER s }) into the fixed r‖s wire form, for interop with
// outside-the-core tooling (CAs, TLS, SEC1-speaking wallets) that
// exchanges ECDSA signatures as ASN.1 DER rather than this package's
// fixed 64-byte Signature encoding.
func ParseASN1Signature(der []byte) (Signature, error) {
	r, s, err := splitDER(der)
	if err != nil {
		return Signature{}, fmt.Errorf("ecdsasecp256k1: %w: %v", errBadSignature, err)
	}
	var sig Signature
	copyScalar(sig.r[:], r)
	copyScalar(sig.s[:], s)
	return sig, nil
}

// BuildASN1Signature re-encodes a fixed r‖s Signature as minimal ASN.1 DER.
func BuildASN1Signature(sig Signature) ([]byte, error) {
	return buildDER(sig.r[:], sig.s[:])
}

// copyScalar left-pads src into a fixed 32-byte big-endian field.
func copyScalar(dst []byte, src []byte) {
	if len(src) > scalarSize {
		src = src[len(src)-scalarSize:]
	}
	copy(dst[scalarSize-len(src):], src)
}

// splitDER extracts the raw big-endian r and s integers from a DER
// ECDSA signature (SEQUENCE { INTEGER r, INTEGER s }).
func splitDER(der []byte) (r, s []byte, err error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) {
		return nil, nil, errors.New("malformed DER signature")
	}
	var rInt, sInt cryptobyte.String
	if !seq.ReadASN1(&rInt, cbasn1.INTEGER) || !seq.ReadASN1(&sInt, cbasn1.INTEGER) {
		return nil, nil, errors.New("malformed DER signature components")
	}
	return trimLeadingZero(rInt), trimLeadingZero(sInt), nil
}

func trimLeadingZero(b []byte) []byte {
	for len(b) > 1 && b[0] == 0x00 {
		b = b[1:]
	}
	return b
}

// buildDER re-encodes fixed 32-byte r and s into a minimal DER
// signature (leading zero bytes stripped, one prepended back if the
// high bit is set).
func buildDER(r, s []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(new(big.Int).SetBytes(r))
		b.AddASN1BigInt(new(big.Int).SetBytes(s))
	})
	return b.Bytes()
}
