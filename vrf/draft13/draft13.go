// SPDX-License-Identifier: BSD-3-Clause

// Package draft13 implements Cardano's batch-compatible VRF variant:
// the same ECVRF-ED25519-SHA512-Elligator2 suite as vrf/draft03
// (including its literal hash-to-curve construction via
// vrf/internal/h2c), but with an untruncated 32-byte challenge scalar
// and a 128-byte proof that carries a precomputed cofactor-cleared
// Gamma ("key image") so ProofToHash needs no group operations. Verify,
// and so BatchVerify, still recompute the cofactor multiplication per
// proof to check the carried key image against Gamma.
//
// Shares its Prove/Verify skeleton with vrf/draft03; this package only
// changes the challenge-scalar width and the proof layout.
package draft13

import (
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
	// ProofSize is the byte length of a draft-13 proof
	// (Gamma:32, c:32, s:32, keyImage:32).
	ProofSize = 128
	// OutputSize is the byte length of ProofToHash's output.
	OutputSize = 64

	suiteByte   byte = 0x04
	domainTwo   byte = 0x02
	domainThree byte = 0x03
	domainZero  byte = 0x00

	signKeyBytes = SeedSize + VerKeySize
)

var (
	// ErrInvalidProofSize is returned when a proof is not ProofSize bytes.
	ErrInvalidProofSize = errors.New("draft13: invalid proof size")
	// ErrInvalidProof is returned when a proof fails to decode or verify.
	ErrInvalidProof = errors.New("draft13: invalid proof")
	// ErrInvalidPublicKey is returned when a public key fails validation.
	ErrInvalidPublicKey = errors.New("draft13: invalid public key")
)

// SignKey is the mlocked VRF signing key: seed(32) || public key(32).
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

// Proof is a draft-13 VRF proof.
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
		panic("draft13: clamping failed: " + err.Error())
	}
	prefix := make([]byte, 32)
	copy(prefix, h[32:])
	return s, prefix
}

// KeypairFromSeed deterministically derives a VRF signing key from a
// 32-byte seed.
func KeypairFromSeed(seedBytes []byte) (SignKey, VerKey, error) {
	if len(seedBytes) != SeedSize {
		return SignKey{}, VerKey{}, fmt.Errorf("draft13: seed must be %d bytes", SeedSize)
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

// hashPointsFull is hashPoints without truncation to 16 bytes: draft-13
// reduces the full 64-byte digest mod the group order instead of
// zero-padding a 16-byte prefix, giving the challenge scalar its full
// width.
func hashPointsFull(p1, p2 []byte, p3, p4 *edwards25519.Point) *edwards25519.Scalar {
	h := sha512.New()
	h.Write([]byte{suiteByte, domainTwo})
	h.Write(p1)
	h.Write(p2)
	h.Write(p3.Bytes())
	h.Write(p4.Bytes())
	h.Write([]byte{domainZero})
	digest := h.Sum(nil)

	c, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		panic("draft13: challenge scalar reduction failed: " + err.Error())
	}
	return c
}

func keyImageOf(gamma *edwards25519.Point) *edwards25519.Point {
	return edwards25519.NewIdentityPoint().MultByCofactor(gamma)
}

func hashFromKeyImage(keyImage []byte) []byte {
	h := sha512.New()
	h.Write([]byte{suiteByte, domainThree})
	h.Write(keyImage)
	h.Write([]byte{domainZero})
	return h.Sum(nil)
}

// Prove implements the batch-compatible VRF prove procedure.
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
	keyImage := keyImageOf(gamma).Bytes()

	nh := sha512.New()
	nh.Write(prefix)
	nh.Write(hString)
	digest := nh.Sum(nil)
	k, err := edwards25519.NewScalar().SetUniformBytes(digest)
	if err != nil {
		return Proof{}, fmt.Errorf("draft13: nonce reduction failed: %w", err)
	}

	kB := edwards25519.NewIdentityPoint().ScalarBaseMult(k)
	kH := edwards25519.NewIdentityPoint().ScalarMult(k, H)
	c := hashPointsFull(hString, gammaString, kB, kH)

	s := edwards25519.NewScalar().Multiply(c, scalar)
	s.Add(s, k)

	var proof Proof
	copy(proof.b[:32], gammaString)
	copy(proof.b[32:64], c.Bytes())
	copy(proof.b[64:96], s.Bytes())
	copy(proof.b[96:], keyImage)
	return proof, nil
}

type decoded struct {
	gamma    *edwards25519.Point
	c        *edwards25519.Scalar
	s        *edwards25519.Scalar
	keyImage []byte
}

func decodeProof(proofBytes []byte) (*decoded, error) {
	if len(proofBytes) != ProofSize {
		return nil, ErrInvalidProofSize
	}
	gammaString := proofBytes[:32]
	gamma, err := edwards25519.NewIdentityPoint().SetBytes(gammaString)
	if err != nil {
		return nil, fmt.Errorf("%w: gamma decode: %v", ErrInvalidProof, err)
	}
	if subtle.ConstantTimeCompare(gamma.Bytes(), gammaString) != 1 {
		return nil, fmt.Errorf("%w: non-canonical gamma", ErrInvalidProof)
	}

	c, err := edwards25519.NewScalar().SetCanonicalBytes(proofBytes[32:64])
	if err != nil {
		return nil, fmt.Errorf("%w: c decode: %v", ErrInvalidProof, err)
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(proofBytes[64:96])
	if err != nil {
		return nil, fmt.Errorf("%w: s decode: %v", ErrInvalidProof, err)
	}

	keyImage := append([]byte{}, proofBytes[96:]...)
	expected := keyImageOf(gamma).Bytes()
	if subtle.ConstantTimeCompare(keyImage, expected) != 1 {
		return nil, fmt.Errorf("%w: key image does not match gamma", ErrInvalidProof)
	}

	return &decoded{gamma: gamma, c: c, s: s, keyImage: keyImage}, nil
}

// Verify verifies proof against vk and alphaString, returning the
// verified VRF output hash on success.
func Verify(vk VerKey, proof Proof, alphaString []byte) ([]byte, error) {
	d, err := decodeProof(proof.b[:])
	if err != nil {
		return nil, err
	}
	gammaString := proof.b[:32]

	Y, err := edwards25519.NewIdentityPoint().SetBytes(vk.b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
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
	U := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(d.c, negY, d.s)

	negGamma := edwards25519.NewIdentityPoint().Negate(d.gamma)
	V := edwards25519.NewIdentityPoint().VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{d.s, d.c},
		[]*edwards25519.Point{H, negGamma},
	)

	cPrime := hashPointsFull(hString, gammaString, U, V)
	if d.c.Equal(cPrime) == 0 {
		return nil, ErrInvalidProof
	}
	return hashFromKeyImage(d.keyImage), nil
}

// ProofToHash extracts the VRF output hash from an already-verified
// proof without any group operations, since the key image is carried
// precomputed in the proof.
func ProofToHash(proof Proof) ([]byte, error) {
	if len(proof.b) != ProofSize {
		return nil, ErrInvalidProofSize
	}
	return hashFromKeyImage(proof.b[96:]), nil
}

// BatchVerify verifies each (vk, proof, alpha) triple in turn. This is
// a sequential convenience wrapper, not an amortized batch algorithm:
// true batching (combining all checks into one multi-scalar
// multiplication via random linear combination) is a possible future
// optimization once a fixed maximum batch size is settled on.
func BatchVerify(vks []VerKey, proofs []Proof, alphas [][]byte) ([][]byte, error) {
	if len(vks) != len(proofs) || len(vks) != len(alphas) {
		return nil, errors.New("draft13: batch inputs must have matching lengths")
	}
	outputs := make([][]byte, len(vks))
	for i := range vks {
		out, err := Verify(vks[i], proofs[i], alphas[i])
		if err != nil {
			return nil, fmt.Errorf("draft13: batch entry %d: %w", i, err)
		}
		outputs[i] = out
	}
	return outputs, nil
}
