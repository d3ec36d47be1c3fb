// SPDX-License-Identifier: BSD-3-Clause

package kes

import (
	"github.com/fractionestate/cardano-crypto-go/dsign/ed25519dsign"
	"github.com/fractionestate/cardano-crypto-go/seed"
)

// The Sum0Kes..Sum7Kes and CompactSum0Kes..CompactSum7Kes aliases below
// are the concrete KES depths, every one built over Ed25519 DSIGN and
// Blake2b256. Sum6Kes (64 periods) is Cardano mainnet's shipped KES
// depth; the shallower and deeper aliases exist for testing and for
// chains with different period-length/slot-length products.

// Sum0Kes is the depth-0 KES algorithm: a bare Ed25519 signature valid
// for exactly one period.
type Sum0Kes = SingleKes[ed25519dsign.SignKey, ed25519dsign.VerKey, ed25519dsign.Signature]

// NewSum0Kes constructs the depth-0 KES algorithm.
func NewSum0Kes() Sum0Kes { return Sum0Kes{D: ed25519dsign.Algorithm{}} }

// Sum1Kes doubles Sum0Kes's single period to two.
type Sum1Kes = SumKes[ed25519dsign.SignKey, ed25519dsign.VerKey, ed25519dsign.Signature]

// NewSum1Kes constructs the depth-1 KES algorithm (2 periods).
func NewSum1Kes() Sum1Kes { return Sum1Kes{Child: NewSum0Kes(), Hash: seed.Blake2b256{}} }

// Sum2Kes doubles Sum1Kes's periods to four.
type Sum2Kes = SumKes[SumSignKey[ed25519dsign.SignKey], SumVerKey, SumSignature[ed25519dsign.Signature]]

// NewSum2Kes constructs the depth-2 KES algorithm (4 periods).
func NewSum2Kes() Sum2Kes { return Sum2Kes{Child: NewSum1Kes(), Hash: seed.Blake2b256{}} }

// Sum3Kes doubles Sum2Kes's periods to eight.
type Sum3Kes = SumKes[
	SumSignKey[SumSignKey[ed25519dsign.SignKey]],
	SumVerKey,
	SumSignature[SumSignature[ed25519dsign.Signature]],
]

// NewSum3Kes constructs the depth-3 KES algorithm (8 periods).
func NewSum3Kes() Sum3Kes { return Sum3Kes{Child: NewSum2Kes(), Hash: seed.Blake2b256{}} }

// Sum4Kes doubles Sum3Kes's periods to sixteen.
type Sum4Kes = SumKes[
	SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]],
	SumVerKey,
	SumSignature[SumSignature[SumSignature[ed25519dsign.Signature]]],
]

// NewSum4Kes constructs the depth-4 KES algorithm (16 periods).
func NewSum4Kes() Sum4Kes { return Sum4Kes{Child: NewSum3Kes(), Hash: seed.Blake2b256{}} }

// Sum5Kes doubles Sum4Kes's periods to thirty-two.
type Sum5Kes = SumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]],
	SumVerKey,
	SumSignature[SumSignature[SumSignature[SumSignature[ed25519dsign.Signature]]]],
]

// NewSum5Kes constructs the depth-5 KES algorithm (32 periods).
func NewSum5Kes() Sum5Kes { return Sum5Kes{Child: NewSum4Kes(), Hash: seed.Blake2b256{}} }

// Sum6Kes doubles Sum5Kes's periods to sixty-four: Cardano mainnet's
// shipped KES depth.
type Sum6Kes = SumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]]],
	SumVerKey,
	SumSignature[SumSignature[SumSignature[SumSignature[SumSignature[ed25519dsign.Signature]]]]],
]

// NewSum6Kes constructs the depth-6 KES algorithm (64 periods).
func NewSum6Kes() Sum6Kes { return Sum6Kes{Child: NewSum5Kes(), Hash: seed.Blake2b256{}} }

// Sum7Kes doubles Sum6Kes's periods to one hundred twenty-eight.
type Sum7Kes = SumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]]]],
	SumVerKey,
	SumSignature[SumSignature[SumSignature[SumSignature[SumSignature[SumSignature[ed25519dsign.Signature]]]]]],
]

// NewSum7Kes constructs the depth-7 KES algorithm (128 periods).
func NewSum7Kes() Sum7Kes { return Sum7Kes{Child: NewSum6Kes(), Hash: seed.Blake2b256{}} }

// CompactSum0Kes is the depth-0 compact KES algorithm.
type CompactSum0Kes = CompactSingleKes[ed25519dsign.SignKey, ed25519dsign.VerKey, ed25519dsign.Signature]

// NewCompactSum0Kes constructs the depth-0 compact KES algorithm.
func NewCompactSum0Kes() CompactSum0Kes {
	return CompactSum0Kes{D: ed25519dsign.Algorithm{}}
}

// CompactSum1Kes doubles CompactSum0Kes's periods to two.
type CompactSum1Kes = CompactSumKes[
	ed25519dsign.SignKey, ed25519dsign.VerKey,
	CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature],
]

// NewCompactSum1Kes constructs the depth-1 compact KES algorithm (2 periods).
func NewCompactSum1Kes() CompactSum1Kes {
	return CompactSum1Kes{Child: NewCompactSum0Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum2Kes doubles CompactSum1Kes's periods to four.
type CompactSum2Kes = CompactSumKes[
	SumSignKey[ed25519dsign.SignKey], SumVerKey,
	CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]],
]

// NewCompactSum2Kes constructs the depth-2 compact KES algorithm (4 periods).
func NewCompactSum2Kes() CompactSum2Kes {
	return CompactSum2Kes{Child: NewCompactSum1Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum3Kes doubles CompactSum2Kes's periods to eight.
type CompactSum3Kes = CompactSumKes[
	SumSignKey[SumSignKey[ed25519dsign.SignKey]], SumVerKey,
	CompactSumSignature[CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]]],
]

// NewCompactSum3Kes constructs the depth-3 compact KES algorithm (8 periods).
func NewCompactSum3Kes() CompactSum3Kes {
	return CompactSum3Kes{Child: NewCompactSum2Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum4Kes doubles CompactSum3Kes's periods to sixteen.
type CompactSum4Kes = CompactSumKes[
	SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]], SumVerKey,
	CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]]]],
]

// NewCompactSum4Kes constructs the depth-4 compact KES algorithm (16 periods).
func NewCompactSum4Kes() CompactSum4Kes {
	return CompactSum4Kes{Child: NewCompactSum3Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum5Kes doubles CompactSum4Kes's periods to thirty-two.
type CompactSum5Kes = CompactSumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]], SumVerKey,
	CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]]]]],
]

// NewCompactSum5Kes constructs the depth-5 compact KES algorithm (32 periods).
func NewCompactSum5Kes() CompactSum5Kes {
	return CompactSum5Kes{Child: NewCompactSum4Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum6Kes doubles CompactSum5Kes's periods to sixty-four:
// Cardano mainnet's compact KES depth.
type CompactSum6Kes = CompactSumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]]], SumVerKey,
	CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]]]]]],
]

// NewCompactSum6Kes constructs the depth-6 compact KES algorithm (64 periods).
func NewCompactSum6Kes() CompactSum6Kes {
	return CompactSum6Kes{Child: NewCompactSum5Kes(), Hash: seed.Blake2b256{}}
}

// CompactSum7Kes doubles CompactSum6Kes's periods to one hundred twenty-eight.
type CompactSum7Kes = CompactSumKes[
	SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[SumSignKey[ed25519dsign.SignKey]]]]]], SumVerKey,
	CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSumSignature[CompactSingleSignature[ed25519dsign.VerKey, ed25519dsign.Signature]]]]]]],
]

// NewCompactSum7Kes constructs the depth-7 compact KES algorithm (128 periods).
func NewCompactSum7Kes() CompactSum7Kes {
	return CompactSum7Kes{Child: NewCompactSum6Kes(), Hash: seed.Blake2b256{}}
}
