// SPDX-License-Identifier: BSD-3-Clause

package mlock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractionestate/cardano-crypto-go/serialize"
)

func TestNewMLockedBytesIsZeroed(t *testing.T) {
	m, err := NewMLockedBytes(64)
	require.NoError(t, err)
	defer func() { _ = m.Destroy() }()

	require.Equal(t, 64, m.Len())
	for _, b := range m.Bytes() {
		require.Equal(t, byte(0), b)
	}
}

func TestZeroOverwritesContents(t *testing.T) {
	m, err := NewMLockedBytes(32)
	require.NoError(t, err)
	defer func() { _ = m.Destroy() }()

	for i := range m.Bytes() {
		m.Bytes()[i] = 0xAA
	}
	m.Zero()
	for _, b := range m.Bytes() {
		require.Equal(t, byte(0), b)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, err := NewMLockedBytes(16)
	require.NoError(t, err)

	require.NoError(t, m.Destroy())
	require.NoError(t, m.Destroy())
	require.Nil(t, m.Bytes())
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	m, err := NewMLockedBytes(8)
	require.NoError(t, err)
	defer func() { _ = m.Destroy() }()
	copy(m.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	c, err := m.Clone()
	require.NoError(t, err)
	defer func() { _ = c.Destroy() }()
	require.Equal(t, m.Bytes(), c.Bytes())

	m.Bytes()[0] = 0xFF
	require.Equal(t, byte(1), c.Bytes()[0])
}

func TestCloneOfDestroyedBufferFails(t *testing.T) {
	m, err := NewMLockedBytes(8)
	require.NoError(t, err)
	require.NoError(t, m.Destroy())

	_, err = m.Clone()
	require.ErrorIs(t, err, ErrClosed)
}

func TestMLockedSeedCopiesSource(t *testing.T) {
	src := []byte{0x10, 0x20, 0x30, 0x40}
	s, err := NewMLockedSeedFromBytes(src)
	require.NoError(t, err)
	defer func() { _ = s.Destroy() }()

	require.Equal(t, src, s.Bytes())

	// Mutating the caller's slice must not reach the locked copy.
	src[0] = 0xFF
	require.Equal(t, byte(0x10), s.Bytes()[0])
}

func TestDirectSerializeRoundTrip(t *testing.T) {
	m, err := NewMLockedBytes(4)
	require.NoError(t, err)
	defer func() { _ = m.Destroy() }()
	copy(m.Bytes(), []byte{0xDE, 0xAD, 0xBE, 0xEF})

	dst := make([]byte, 4)
	sink := serialize.NewSliceSink(dst)
	require.NoError(t, m.DirectSerialize(sink))
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, dst)

	src := serialize.NewSliceSource(dst)
	m2, err := DirectDeserializeMLockedBytes(src, 4)
	require.NoError(t, err)
	defer func() { _ = m2.Destroy() }()
	require.Equal(t, m.Bytes(), m2.Bytes())
}

func TestDirectSerializeOfDestroyedBufferFails(t *testing.T) {
	m, err := NewMLockedBytes(4)
	require.NoError(t, err)
	require.NoError(t, m.Destroy())

	sink := serialize.NewSliceSink(make([]byte, 4))
	require.ErrorIs(t, m.DirectSerialize(sink), ErrClosed)
}

func TestPinnedSizedBytes(t *testing.T) {
	p := NewPinnedSizedBytesFrom([]byte{0x01, 0x02, 0x03})
	require.Equal(t, 3, p.Len())

	dst := make([]byte, 3)
	require.NoError(t, p.DirectSerialize(serialize.NewSliceSink(dst)))
	require.Equal(t, []byte{0x01, 0x02, 0x03}, dst)

	p2, err := DirectDeserializePinnedSizedBytes(serialize.NewSliceSource(dst), 3)
	require.NoError(t, err)
	require.Equal(t, p.Bytes(), p2.Bytes())

	_, err = DirectDeserializePinnedSizedBytes(serialize.NewSliceSource(dst), 4)
	require.Error(t, err)
}

func TestMetricsCountersTrackAllocations(t *testing.T) {
	EnableMetrics(true)
	defer EnableMetrics(false)

	before := Snapshot()

	m, err := NewMLockedBytes(128)
	require.NoError(t, err)
	m.Zero()
	require.NoError(t, m.Destroy())

	after := Snapshot()
	require.Equal(t, before.Allocations+1, after.Allocations)
	require.Equal(t, before.BytesLocked+128, after.BytesLocked)
	// One explicit Zero plus the one inside Destroy.
	require.Equal(t, before.Zeroizations+2, after.Zeroizations)
}

func TestMetricsDisabledCountsNothing(t *testing.T) {
	EnableMetrics(false)
	before := Snapshot()

	m, err := NewMLockedBytes(32)
	require.NoError(t, err)
	require.NoError(t, m.Destroy())

	require.Equal(t, before, Snapshot())
}

func TestConstantTimeEqual(t *testing.T) {
	require.True(t, ConstantTimeEqual([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.False(t, ConstantTimeEqual([]byte{1, 2, 3}, []byte{1, 2, 4}))
	require.False(t, ConstantTimeEqual([]byte{1, 2}, []byte{1, 2, 3}))
}
