// SPDX-License-Identifier: BSD-3-Clause

package mlock

import (
	"github.com/fractionestate/cardano-crypto-go/serialize"
)

// PinnedSizedBytes is a fixed-size, non-mlocked buffer guaranteed stable
// in memory for FFI-style byte exchanges. It carries public material
// (verification keys, signatures) where secrecy is not a concern but a
// stable address and a known size are.
type PinnedSizedBytes struct {
	buf []byte
}

// NewPinnedSizedBytes allocates a zeroed PinnedSizedBytes of size n.
func NewPinnedSizedBytes(n int) *PinnedSizedBytes {
	return &PinnedSizedBytes{buf: make([]byte, n)}
}

// NewPinnedSizedBytesFrom copies src into a new PinnedSizedBytes.
func NewPinnedSizedBytesFrom(src []byte) *PinnedSizedBytes {
	p := NewPinnedSizedBytes(len(src))
	copy(p.buf, src)
	return p
}

// Bytes returns the buffer's backing slice.
func (p *PinnedSizedBytes) Bytes() []byte {
	return p.buf
}

// Len returns the buffer's length.
func (p *PinnedSizedBytes) Len() int {
	return len(p.buf)
}

// DirectSerialize implements serialize.DirectSerializable, writing the
// buffer directly to w without an intermediate copy.
func (p *PinnedSizedBytes) DirectSerialize(w serialize.ByteSink) error {
	return w.WriteBytes(p.buf)
}

// DirectDeserializePinnedSizedBytes reads exactly n bytes from r and
// returns them as a new PinnedSizedBytes.
func DirectDeserializePinnedSizedBytes(r serialize.ByteSource, n int) (*PinnedSizedBytes, error) {
	b, err := r.ReadBytesExact(n)
	if err != nil {
		return nil, err
	}
	return NewPinnedSizedBytesFrom(b), nil
}
