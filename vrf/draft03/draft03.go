// SPDX-License-Identifier: BSD-3-Clause

// Package draft03 implements the ECVRF-ED25519-SHA512-Elligator2 suite
// of draft-irtf-cfrg-vrf-03: an 80-byte-proof VRF over Edwards25519
// with Elligator2 hash-to-curve, keyed and derived the same way as
// Ed25519 signing keys. This is the VRF Cardano Praos leader election
// runs on.
//
// The hash-to-curve step (vrf/internal/h2c) is the literal
// one-shot-SHA512 Elligator2 construction from the draft, not the
// XMD-based suite of the later IETF hash-to-curve drafts, so outputs
// match the reference libsodium VRF byte-for-byte.
package draft03

import (
	"bytes"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/fractionestate/cardano-crypto-go/mlock"
	internalh2c "github.com/fractionestate/cardano-crypto-go/vrf/internal/h2c"
)

const (
	// SeedSize is the byte length KeypairFromSeed expects.
	SeedSize = 32
	// VerKeySize is the byte length of a VRF public key.
	VerKeySize = 32
	// ProofSize is the byte length of a draft-03 proof (Gamma:32, c:16, s:32).
	ProofSize = 80
	// OutputSize is the byte length of ProofToHash's output.
	OutputSize = 64

	suiteByte    byte = 0x04
	domainTwo    byte = 0x02
	domainThree  byte = 0x03
	domainZero   byte = 0x00
	signKeyBytes      = SeedSize + VerKeySize
)

var (
	// ErrInvalidProofSize is returned when a proof is not ProofSize bytes.
	ErrInvalidProofSize = errors.New("draft03: invalid proof size")
	// ErrInvalidProof is returned when a proof fails to decode or verify.
	ErrInvalidProof = errors.New("draft03: invalid proof")
	// ErrInvalidPublicKey is returned when a public key fails validation.
	ErrInvalidPublicKey = errors.New("draft03: invalid public key")
)

// SignKey is the mlocked VRF signing key: seed(32) || public key(32),
// mirroring dsign/ed25519dsign's compound in-memory form.
type SignKey struct {
	buf *mlock.MLockedBytes
}

func (k SignKey) seed() []byte { return k.buf.Bytes()[:SeedSize] }
func (k SignKey) pub() []byte  { return k.buf.Bytes()[SeedSize:] }

// VerKey is a VRF public key.
type VerKey struct {
	b [VerKeySize]byte
}

// Bytes returns the verification key's compressed-point encoding.
func (v VerKey) Bytes() []byte {
	out := make([]byte, VerKeySize)
	copy(out, v.b[:])
	return out
}

// Proof is a draft-03 VRF proof.
type Proof struct {
	b [ProofSize]byte
}

// Bytes returns the proof's wire encoding.
func (p Proof) Bytes() []byte {
	out := make([]byte, ProofSize)
	copy(out, p.b[:])
	return out
}

func extendedScalarAndPrefix(seedBytes []byte) (*edwards25519.Scalar, []byte) {
	h := sha512.Sum512(seedBytes)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		panic("draft03: clamping failed: " + err.Error())
	}
	prefix := make([]byte, 32)
	copy(prefix, h[32:])
	return s, prefix
}

// KeypairFromSeed deterministically derives a VRF signing key (and,
// implicitly, its verification key) from a 32-byte seed.
func KeypairFromSeed(seedBytes []byte) (SignKey, VerKey, error) {
	if len(seedBytes) != SeedSize {
		return SignKey{}, VerKey{}, fmt.Errorf("draft03: seed must be %d bytes", SeedSize)
	}
	scalar, _ := extendedScalarAndPrefix(seedBytes)
	pub := edwards25519.NewIdentityPoint().ScalarBaseMult(scalar).Bytes()

	buf, err := mlock.NewMLockedBytes(signKeyBytes)
	if err != nil {
		return SignKey{}, VerKey{}, err
	}
	copy(buf.Bytes()[:SeedSize], seedBytes)
	copy(buf.Bytes()[SeedSize:], pub)

	var vk VerKey
	copy(vk.b[:], pub)
	return SignKey{buf: buf}, vk, nil
}

// VerKey derives sk's verification key.
func (sk SignKey) VerKey() VerKey {
	var vk VerKey
	copy(vk.b[:], sk.pub())
	return vk
}

// Forget erases sk's secret material.
func (sk SignKey) Forget() {
	if sk.buf != nil {
		_ = sk.buf.Destroy()
	}
}

func hashToCurve(pkString, alphaString []byte) (*edwards25519.Point, error) {
	return internalh2c.HashToCurve(suiteByte, pkString, alphaString)
}

func hashPoints(p1, p2 []byte, p3, p4 *edwards25519.Point) *edwards25519.Scalar {
	h := sha512.New()
	h.Write([]byte{suiteByte, domainTwo})
	h.Write(p1)
	h.Write(p2)
	h.Write(p3.Bytes())
	h.Write(p4.Bytes())
	h.Write([]byte{domainZero})
	digest := h.Sum(nil)

	var cString [32]byte
	copy(cString[:16], digest[:16])
	c, err := edwards25519.NewScalar().SetCanonicalBytes(cString[:])
	if err != nil {
		panic("draft03: challenge scalar reduction failed: " + err.Error())
	}
	return c
}

func gammaToHash(gamma *edwards25519.Point) []byte {
	cG := edwards25519.NewIdentityPoint().MultByCofactor(gamma)
	h := sha512.New()
	h.Write([]byte{suiteByte, domainThree})
	h.Write(cG.Bytes())
	h.Write([]byte{domainZero})
	return h.Sum(nil)
}

// Prove implements ECVRF_prove: deterministically produces a proof
// that alphaString was evaluated under sk, without revealing sk.
func Prove(sk SignKey, alphaString []byte) (Proof, error) {
	scalar, prefix := extendedScalarAndPrefix(sk.seed())
	pub := sk.pub()

	H, err := hashToCurve(pub, alphaString)
	if err != nil {
		return Proof{}, err
	}
	hString := H.Bytes()

	gamma := edwards25519.NewIdentityPoint().ScalarMult(scalar, H)
	gammaString := gamma.Bytes()

	nh := sha512.New()
	nh.Write(prefix)
	nh.Write(hString)
	digest := nh.Sum(nil)
	k, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		return Proof{}, fmt.Errorf("draft03: nonce reduction failed: %w", err)
	}

	kB := edwards25519.NewIdentityPoint().ScalarBaseMult(k)
	kH := edwards25519.NewIdentityPoint().ScalarMult(k, H)
	c := hashPoints(hString, gammaString, kB, kH)

	s := edwards25519.NewScalar().Multiply(c, scalar)
	s.Add(s, k)

	var proof Proof
	copy(proof.b[:32], gammaString)
	copy(proof.b[32:48], c.Bytes()[:16])
	copy(proof.b[48:], s.Bytes())
	return proof, nil
}

func decodeProof(proofBytes []byte) (*edwards25519.Point, *edwards25519.Scalar, *edwards25519.Scalar, error) {
	if len(proofBytes) != ProofSize {
		return nil, nil, nil, ErrInvalidProofSize
	}
	gammaString := proofBytes[:32]
	gamma, err := edwards25519.NewIdentityPoint().SetBytes(gammaString)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: gamma decode: %v", ErrInvalidProof, err)
	}
	if subtle.ConstantTimeCompare(gamma.Bytes(), gammaString) != 1 {
		return nil, nil, nil, fmt.Errorf("%w: non-canonical gamma", ErrInvalidProof)
	}
	if edwards25519.NewIdentityPoint().MultByCofactor(gamma).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, nil, nil, fmt.Errorf("%w: small-order gamma", ErrInvalidProof)
	}

	var cString [32]byte
	copy(cString[:16], proofBytes[32:48])
	c, err := edwards25519.NewScalar().SetCanonicalBytes(cString[:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: c decode: %v", ErrInvalidProof, err)
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(proofBytes[48:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: s decode: %v", ErrInvalidProof, err)
	}

	return gamma, c, s, nil
}

// Verify implements ECVRF_verify, returning the verified output hash
// on success.
func Verify(vk VerKey, proof Proof, alphaString []byte) ([]byte, error) {
	gamma, c, s, err := decodeProof(proof.b[:])
	if err != nil {
		return nil, err
	}
	gammaString := proof.b[:32]

	Y, err := edwards25519.NewIdentityPoint().SetBytes(vk.b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if !bytes.Equal(Y.Bytes(), vk.b[:]) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPublicKey)
	}
	cY := edwards25519.NewIdentityPoint().MultByCofactor(Y)
	if cY.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, fmt.Errorf("%w: small-order public key", ErrInvalidPublicKey)
	}

	H, err := hashToCurve(vk.b[:], alphaString)
	if err != nil {
		return nil, err
	}
	hString := H.Bytes()

	negY := edwards25519.NewIdentityPoint().Negate(Y)
	U := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(c, negY, s)

	negGamma := edwards25519.NewIdentityPoint().Negate(gamma)
	V := edwards25519.NewIdentityPoint().VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{s, c},
		[]*edwards25519.Point{H, negGamma},
	)

	cPrime := hashPoints(hString, gammaString, U, V)
	if c.Equal(cPrime) == 0 {
		return nil, ErrInvalidProof
	}
	return gammaToHash(gamma), nil
}

// ProofToHash implements ECVRF_proof_to_hash: it should only be called
// on proofs already known to be valid (e.g. from Verify's return), or
// immediately after an independent Verify call.
func ProofToHash(proof Proof) ([]byte, error) {
	gamma, _, _, err := decodeProof(proof.b[:])
	if err != nil {
		return nil, err
	}
	return gammaToHash(gamma), nil
}
