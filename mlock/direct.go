// SPDX-License-Identifier: BSD-3-Clause

package mlock

import "github.com/fractionestate/cardano-crypto-go/serialize"

// DirectSerialize writes m's contents directly to w, without copying
// through an intermediate heap buffer.
func (m *MLockedBytes) DirectSerialize(w serialize.ByteSink) error {
	if m.closed {
		return ErrClosed
	}
	return w.WriteBytes(m.buf)
}

// DirectDeserializeMLockedBytes reads exactly n bytes from r directly
// into a freshly locked buffer.
func DirectDeserializeMLockedBytes(r serialize.ByteSource, n int) (*MLockedBytes, error) {
	b, err := r.ReadBytesExact(n)
	if err != nil {
		return nil, err
	}
	return NewMLockedSeedFromBytesInto(b)
}

// NewMLockedSeedFromBytesInto is the non-seed-flavored twin of
// NewMLockedSeedFromBytes, used where the caller does not want the
// MLockedSeed wrapper type.
func NewMLockedSeedFromBytesInto(src []byte) (*MLockedBytes, error) {
	m, err := NewMLockedBytes(len(src))
	if err != nil {
		return nil, err
	}
	copy(m.buf, src)
	return m, nil
}
