// SPDX-License-Identifier: BSD-3-Clause

package kes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSeed(n int, b byte) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestSum0KesSingleSignature(t *testing.T) {
	a := NewSum0Kes()
	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x01))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	msg := []byte("one period only")
	sig, err := a.SignKES(nil, msg, 0, sk)
	require.NoError(t, err)
	require.NoError(t, a.VerifyKES(nil, vk, 0, msg, sig))

	_, err = a.UpdateKES(sk, 0)
	require.ErrorIs(t, err, ErrKeyExhausted)
}

func TestSum1KesForwardSecurityAfterMidpoint(t *testing.T) {
	a := NewSum1Kes()
	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x02))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)
	require.Equal(t, 2, a.TotalPeriods())

	msg0 := []byte("period zero")
	sig0, err := a.SignKES(nil, msg0, 0, sk)
	require.NoError(t, err)
	require.NoError(t, a.VerifyKES(nil, vk, 0, msg0, sig0))

	sk1, err := a.UpdateKES(sk, 0)
	require.NoError(t, err)

	msg1 := []byte("period one")
	sig1, err := a.SignKES(nil, msg1, 1, sk1)
	require.NoError(t, err)
	require.NoError(t, a.VerifyKES(nil, vk, 1, msg1, sig1))

	// A period-0 signature must not verify at period 1, and vice versa.
	require.Error(t, a.VerifyKES(nil, vk, 1, msg0, sig0))
	require.Error(t, a.VerifyKES(nil, vk, 0, msg1, sig1))

	// Once the key has evolved past period 0, attempting to sign at the
	// now-stale period must fail rather than silently delegating to the
	// (still-valid, but wrong) child period.
	_, err = a.SignKES(nil, msg0, 0, sk1)
	require.ErrorIs(t, err, ErrPeriodOutOfRange)

	// Period 1 is the last period; erase the key explicitly.
	a.ForgetSignKey(sk1)
}

func TestCompactSum1KesRejectsSignAtStalePeriod(t *testing.T) {
	a := NewCompactSum1Kes()
	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x07))
	require.NoError(t, err)
	require.Equal(t, 2, a.TotalPeriods())

	msg0 := []byte("period zero")
	_, err = a.SignKES(nil, msg0, 0, sk)
	require.NoError(t, err)

	sk1, err := a.UpdateKES(sk, 0)
	require.NoError(t, err)

	_, err = a.SignKES(nil, msg0, 0, sk1)
	require.ErrorIs(t, err, ErrPeriodOutOfRange)

	msg1 := []byte("period one")
	_, err = a.SignKES(nil, msg1, 1, sk1)
	require.NoError(t, err)

	a.ForgetSignKey(sk1)
}

func TestSum3KesEvolvesAcrossAllEightPeriods(t *testing.T) {
	a := NewSum3Kes()
	require.Equal(t, 8, a.TotalPeriods())

	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x03))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	for period := 0; period < a.TotalPeriods(); period++ {
		msg := []byte{byte(period)}
		sig, err := a.SignKES(nil, msg, period, sk)
		require.NoErrorf(t, err, "sign at period %d", period)
		require.NoErrorf(t, a.VerifyKES(nil, vk, period, msg, sig), "verify at period %d", period)

		if period+1 < a.TotalPeriods() {
			sk, err = a.UpdateKES(sk, period)
			require.NoErrorf(t, err, "update at period %d", period)
		} else {
			_, err = a.UpdateKES(sk, period)
			require.ErrorIs(t, err, ErrKeyExhausted)
		}
	}
}

func TestCompactSum3KesReconstructsVerificationKeyMidTree(t *testing.T) {
	a := NewCompactSum3Kes()
	require.Equal(t, 8, a.TotalPeriods())

	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x04))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	const targetPeriod = 5
	for period := 0; period < targetPeriod; period++ {
		sk, err = a.UpdateKES(sk, period)
		require.NoErrorf(t, err, "update at period %d", period)
	}

	msg := []byte("period five message")
	sig, err := a.SignKES(nil, msg, targetPeriod, sk)
	require.NoError(t, err)

	reconstructed, err := a.ReconstructVerificationKey(sig, targetPeriod)
	require.NoError(t, err)
	require.Equal(t, a.RawSerializeVerKey(vk), a.RawSerializeVerKey(reconstructed))

	require.NoError(t, a.VerifyKES(nil, vk, targetPeriod, msg, sig))
	require.Error(t, a.VerifyKES(nil, vk, targetPeriod, []byte("wrong message"), sig))
}

func TestCompactSumSignatureIsSmallerThanSumSignature(t *testing.T) {
	sum := NewSum2Kes()
	compact := NewCompactSum2Kes()

	skSum, err := sum.GenKey(testSeed(sum.SeedSize(), 0x05))
	require.NoError(t, err)
	skCompact, err := compact.GenKey(testSeed(compact.SeedSize(), 0x05))
	require.NoError(t, err)

	msg := []byte("size comparison")
	sigSum, err := sum.SignKES(nil, msg, 0, skSum)
	require.NoError(t, err)
	sigCompact, err := compact.SignKES(nil, msg, 0, skCompact)
	require.NoError(t, err)

	require.Less(t, len(compact.RawSerializeSignature(sigCompact)), len(sum.RawSerializeSignature(sigSum)))
}

func TestSerializeRoundTrip(t *testing.T) {
	a := NewSum2Kes()
	sk, err := a.GenKey(testSeed(a.SeedSize(), 0x06))
	require.NoError(t, err)
	vk, err := a.DeriveVerificationKey(sk)
	require.NoError(t, err)

	vkBytes := a.RawSerializeVerKey(vk)
	vk2, err := a.RawDeserializeVerKey(vkBytes)
	require.NoError(t, err)
	require.Equal(t, vkBytes, a.RawSerializeVerKey(vk2))

	sig, err := a.SignKES(nil, []byte("round trip"), 0, sk)
	require.NoError(t, err)
	sigBytes := a.RawSerializeSignature(sig)
	sig2, err := a.RawDeserializeSignature(sigBytes)
	require.NoError(t, err)
	require.Equal(t, sigBytes, a.RawSerializeSignature(sig2))
}
