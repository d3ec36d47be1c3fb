// SPDX-License-Identifier: BSD-3-Clause

// Package schnorrsecp256k1 implements BIP-0340 Schnorr signatures over
// secp256k1: 32-byte x-only public keys, tagged hashes, and a fixed
// (non-randomized) deterministic nonce derivation in place of
// BIP-0340's optional auxiliary-randomness mixing, since determinism
// is a hard requirement here rather than a defense-in-depth option.
//
// The BIP-0340 algorithm itself (conditional negation of the private
// scalar/nonce based on the public point's y-parity, the three tagged
// hashes, lift_x on verify) is implemented here on
// github.com/decred/dcrd/dcrec/secp256k1/v4's ModNScalar/JacobianPoint
// primitives; decred's bundled `schnorr` sub-package predates BIP-0340
// and uses a different, incompatible signature scheme, so it cannot be
// reused.
package schnorrsecp256k1

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/fractionestate/cardano-crypto-go/dsign"
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

const (
	// SeedSize is the byte length GenKey expects.
	SeedSize = 32
	// VerKeySize is the x-only verification key length.
	VerKeySize = 32
	// SignatureSize is the fixed signature encoding length.
	SignatureSize = 64
	// MessageSize is BIP-0340's required fixed message length.
	MessageSize = 32

	tagAux       = "BIP0340/aux"
	tagNonce     = "BIP0340/nonce"
	tagChallenge = "BIP0340/challenge"
)

var (
	errBadSeed      = errors.New("schnorrsecp256k1: invalid seed (zero or out of range)")
	errBadVerKey    = errors.New("schnorrsecp256k1: invalid verification key encoding")
	errBadSignature = errors.New("schnorrsecp256k1: invalid signature encoding")
	errBadMsgSize   = errors.New("schnorrsecp256k1: message must be exactly 32 bytes")
)

// SignKey is a BIP-0340 Schnorr signing key: the private scalar,
// already adjusted so that its public point has even y (BIP-0340's
// implicit even-y representative). The scalar is held behind a pointer
// so that ForgetSignKey's zeroization is observable through every copy
// of the key, not just the copy passed to it.
type SignKey struct {
	d    *secp256k1.ModNScalar
	pubX [32]byte
}

// VerKey is a BIP-0340 x-only verification key.
type VerKey struct {
	xBytes [32]byte
}

// Bytes returns the 32-byte x-only encoding.
func (v VerKey) Bytes() []byte {
	out := make([]byte, VerKeySize)
	copy(out, v.xBytes[:])
	return out
}

// Signature is a BIP-0340 signature (r‖s).
type Signature struct {
	b [SignatureSize]byte
}

// Bytes returns the 64-byte wire encoding.
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

// DirectSerialize writes the x-only verification key to w.
func (v VerKey) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(v.xBytes[:])
}

// DirectDeserialize reads an x-only verification key off r.
func (*VerKey) DirectDeserialize(r serialize.ByteSource) (VerKey, error) {
	var vk VerKey
	b, err := r.ReadBytesExact(VerKeySize)
	if err != nil {
		return vk, errBadVerKey
	}
	copy(vk.xBytes[:], b)
	return vk, nil
}

// DirectSerialize writes the signature to w.
func (s Signature) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(s.b[:])
}

// DirectDeserialize reads a signature off r.
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

// SignKeySize implements dsign.Algorithm.
func (Algorithm) SignKeySize() int { return SeedSize }

// SignatureSize implements dsign.Algorithm.
func (Algorithm) SignatureSize() int { return SignatureSize }

func taggedHash(tag string, vals ...[]byte) []byte {
	hashedTag := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(hashedTag[:])
	h.Write(hashedTag[:])
	for _, v := range vals {
		h.Write(v)
	}
	return h.Sum(nil)
}

// scalarBaseMultXOnly computes k*G and returns its 32-byte X coordinate
// plus whether its Y coordinate is odd, using the PrivateKey/PublicKey
// wrappers (valid because G is the implicit base point for any
// PrivateKey).
func scalarBaseMultXOnly(k *secp256k1.ModNScalar) (x [32]byte, yOdd bool) {
	kBytes := k.Bytes()
	priv := secp256k1.PrivKeyFromBytes(kBytes[:])
	defer priv.Zero()
	compressed := priv.PubKey().SerializeCompressed()
	copy(x[:], compressed[1:])
	yOdd = compressed[0] == 0x03
	return x, yOdd
}

// GenKey implements dsign.Algorithm.
func (Algorithm) GenKey(seedBytes []byte) (SignKey, error) {
	if len(seedBytes) != SeedSize {
		return SignKey{}, errBadSeed
	}

	var dPrime secp256k1.ModNScalar
	overflow := dPrime.SetByteSlice(seedBytes)
	if overflow || dPrime.IsZero() {
		return SignKey{}, errBadSeed
	}

	pubX, yOdd := scalarBaseMultXOnly(&dPrime)

	d := new(secp256k1.ModNScalar)
	d.Set(&dPrime)
	if yOdd {
		d.Negate()
	}
	dPrime.Zero()

	return SignKey{d: d, pubX: pubX}, nil
}

// DeriveVerificationKey implements dsign.Algorithm.
func (Algorithm) DeriveVerificationKey(sk SignKey) (VerKey, error) {
	return VerKey{xBytes: sk.pubX}, nil
}

// Sign implements dsign.Algorithm. ctx is mixed into the BIP-0340
// nonce derivation only, as the auxiliary input; the challenge hash is
// the plain BIP-0340 one over R, the public key and msg, so ctx does
// not bind the signature and Verify ignores it. msg must be exactly
// MessageSize bytes, as BIP-0340 specifies.
func (a Algorithm) Sign(ctx []byte, msg []byte, sk SignKey) (Signature, error) {
	if len(msg) != MessageSize {
		return Signature{}, errBadMsgSize
	}

	dBytes := sk.d.Bytes()
	t := make([]byte, 32)
	aux := taggedHash(tagAux, ctx)
	for i := range t {
		t[i] = dBytes[i] ^ aux[i]
	}

	nonceInput := append(append(append([]byte{}, t...), sk.pubX[:]...), msg...)
	randBytes := taggedHash(tagNonce, nonceInput)

	var kPrime secp256k1.ModNScalar
	if kPrime.SetByteSlice(randBytes); kPrime.IsZero() {
		return Signature{}, errors.New("schnorrsecp256k1: derived nonce is zero")
	}

	rXBytes, rYOdd := scalarBaseMultXOnly(&kPrime)

	var k secp256k1.ModNScalar
	k.Set(&kPrime)
	if rYOdd {
		k.Negate()
	}

	challengeInput := append(append(append([]byte{}, rXBytes[:]...), sk.pubX[:]...), msg...)
	eBytes := taggedHash(tagChallenge, challengeInput)
	var e secp256k1.ModNScalar
	e.SetByteSlice(eBytes)

	var ed secp256k1.ModNScalar
	ed.Set(&e)
	ed.Mul(sk.d)

	var s secp256k1.ModNScalar
	s.Set(&k)
	s.Add(&ed)

	var sig Signature
	copy(sig.b[:32], rXBytes[:])
	sBytes := s.Bytes()
	copy(sig.b[32:], sBytes[:])

	if err := a.Verify(ctx, VerKey{xBytes: sk.pubX}, msg, sig); err != nil {
		return Signature{}, fmt.Errorf("schnorrsecp256k1: self-check of fresh signature failed: %w", err)
	}
	return sig, nil
}

// Verify implements dsign.Algorithm.
func (Algorithm) Verify(ctx []byte, vk VerKey, msg []byte, sig Signature) error {
	if len(msg) != MessageSize {
		return errBadMsgSize
	}

	rXBytes := sig.b[:32]
	var s secp256k1.ModNScalar
	if s.SetByteSlice(sig.b[32:]) {
		return fmt.Errorf("%w: s out of range", dsign.ErrScalarOutOfRange)
	}

	var compressed [33]byte
	compressed[0] = 0x02
	copy(compressed[1:], vk.xBytes[:])
	P, err := secp256k1.ParsePubKey(compressed[:])
	if err != nil {
		return fmt.Errorf("%w: lift_x failed: %v", dsign.ErrPointDecodeFailed, err)
	}

	challengeInput := append(append(append([]byte{}, rXBytes...), vk.xBytes[:]...), msg...)
	eBytes := taggedHash(tagChallenge, challengeInput)
	var e secp256k1.ModNScalar
	e.SetByteSlice(eBytes)
	var negE secp256k1.ModNScalar
	negE.Set(&e)
	negE.Negate()

	var pJac secp256k1.JacobianPoint
	P.AsJacobian(&pJac)

	var negEP secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&negE, &pJac, &negEP)

	var sG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &sG)

	var R secp256k1.JacobianPoint
	secp256k1.AddNonConst(&sG, &negEP, &R)

	if R.Z.IsZero() {
		return fmt.Errorf("%w: R is the point at infinity", dsign.ErrVerifyFailed)
	}
	R.ToAffine()
	if R.Y.IsOdd() {
		return fmt.Errorf("%w: R has odd y", dsign.ErrVerifyFailed)
	}
	rxComputed := R.X.Bytes()
	if !bytes.Equal(rxComputed[:], rXBytes) {
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
	b := sk.d.Bytes()
	out := make([]byte, 32)
	copy(out, b[:])
	return out
}

// RawDeserializeSignKeyM implements dsign.UnsoundAlgorithm. Note that
// the stored scalar is already even-y-adjusted, so deserializing
// re-derives pubX directly from it rather than re-running GenKey's
// adjustment step. The scalar is held in ordinary heap memory, not in
// an mlock buffer.
func (Algorithm) RawDeserializeSignKeyM(b []byte) (SignKey, error) {
	if len(b) != 32 {
		return SignKey{}, errBadSeed
	}
	d := new(secp256k1.ModNScalar)
	if overflow := d.SetByteSlice(b); overflow {
		return SignKey{}, errBadSeed
	}
	pubX, _ := scalarBaseMultXOnly(d)
	return SignKey{d: d, pubX: pubX}, nil
}

// ForgetSignKey implements dsign.Algorithm: zeroes the shared scalar,
// erasing the secret for every copy of sk that aliases it.
func (Algorithm) ForgetSignKey(sk SignKey) {
	if sk.d != nil {
		sk.d.Zero()
	}
}
