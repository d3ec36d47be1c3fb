// SPDX-License-Identifier: BSD-3-Clause

package seed

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func TestNewSeedFromBytesCopiesInput(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04}
	s := NewSeedFromBytes(src)

	src[0] = 0xFF
	require.Equal(t, byte(0x01), s.Bytes()[0])

	// Bytes itself returns a copy, not the internal storage.
	got := s.Bytes()
	got[1] = 0xFF
	require.Equal(t, byte(0x02), s.Bytes()[1])
	require.Equal(t, 4, s.Len())
}

func TestNewSeedFromEntropy(t *testing.T) {
	s1, err := NewSeedFromEntropy(32)
	require.NoError(t, err)
	require.Equal(t, 32, s1.Len())

	s2, err := NewSeedFromEntropy(32)
	require.NoError(t, err)
	require.NotEqual(t, s1.Bytes(), s2.Bytes())
}

func TestExpandSeedUsesDomainSeparators(t *testing.T) {
	seedBytes := make([]byte, 32)
	for i := range seedBytes {
		seedBytes[i] = 0x42
	}

	left, right := ExpandSeed[Blake2b256](seedBytes)

	wantLeft := blake2b.Sum256(append([]byte{0x01}, seedBytes...))
	wantRight := blake2b.Sum256(append([]byte{0x02}, seedBytes...))
	require.Equal(t, wantLeft[:], left)
	require.Equal(t, wantRight[:], right)
}

func TestExpandSeedWithMatchesGenericForm(t *testing.T) {
	seedBytes := []byte("thirty-two bytes of seed input!!")

	gl, gr := ExpandSeed[Blake2b256](seedBytes)
	il, ir := ExpandSeedWith(Blake2b256{}, seedBytes)
	require.Equal(t, gl, il)
	require.Equal(t, gr, ir)
}

func TestSplitIsDeterministic(t *testing.T) {
	s := NewSeedFromBytes(make([]byte, 32))

	l1, r1 := s.Split()
	l2, r2 := s.Split()
	require.Equal(t, l1.Bytes(), l2.Bytes())
	require.Equal(t, r1.Bytes(), r2.Bytes())
	require.NotEqual(t, l1.Bytes(), r1.Bytes())
}

func TestRunWithSeedIsDeterministic(t *testing.T) {
	s := NewSeedFromBytes([]byte("a fixed seed for the rng stream "))

	read := func(labels ...[]byte) []byte {
		out := make([]byte, 64)
		_, err := io.ReadFull(RunWithSeed(s, labels...), out)
		require.NoError(t, err)
		return out
	}

	require.Equal(t, read([]byte("label")), read([]byte("label")))
	require.NotEqual(t, read([]byte("label-a")), read([]byte("label-b")))

	other := NewSeedFromBytes([]byte("a different seed, same labels..."))
	otherOut := make([]byte, 64)
	_, err := io.ReadFull(RunWithSeed(other, []byte("label")), otherOut)
	require.NoError(t, err)
	require.NotEqual(t, read([]byte("label")), otherOut)
}

func TestConstantTimeEqual(t *testing.T) {
	require.True(t, ConstantTimeEqual([]byte{0xAA, 0xBB}, []byte{0xAA, 0xBB}))
	require.False(t, ConstantTimeEqual([]byte{0xAA, 0xBB}, []byte{0xAA, 0xBC}))
	require.False(t, ConstantTimeEqual([]byte{0xAA}, []byte{0xAA, 0xBB}))
	require.True(t, ConstantTimeEqual(nil, []byte{}))
}
