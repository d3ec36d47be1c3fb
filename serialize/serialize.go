// SPDX-License-Identifier: BSD-3-Clause

// Package serialize provides the zero-copy byte adapters that DSIGN and
// KES raw (de)serialization paths are built on, keeping secret material
// off the heap in the form of intermediate growable buffers.
package serialize

import "errors"

// ErrShortBuffer is returned when a sink or source does not have enough
// room for the requested operation.
var ErrShortBuffer = errors.New("serialize: short buffer")

// ByteSink is a minimal, non-blocking byte write target.
type ByteSink interface {
	WriteBytes(p []byte) error
}

// ByteSource is a minimal, non-blocking byte read source. Implementations
// that back secret material must return a sub-slice of their own backing
// store rather than a copy.
type ByteSource interface {
	ReadBytesExact(n int) ([]byte, error)
}

// DirectSerializable is implemented by any entity that can write its
// canonical wire encoding directly to a ByteSink without an intermediate
// allocation.
type DirectSerializable interface {
	DirectSerialize(w ByteSink) error
}

// DirectDeserializable is the decoding half of the contract: a decoder
// (conventionally the entity's pointer type, invoked on a zero value)
// that reads a fresh T directly off a ByteSource.
type DirectDeserializable[T any] interface {
	DirectDeserialize(r ByteSource) (T, error)
}

// SliceSink is a ByteSink backed by a pre-sized slice. Every WriteBytes
// call advances an internal cursor; writing past the end is an error
// rather than a silent grow, so callers size the destination once.
type SliceSink struct {
	buf    []byte
	cursor int
}

// NewSliceSink wraps dst, a destination buffer exactly the size the
// caller expects to fill.
func NewSliceSink(dst []byte) *SliceSink {
	return &SliceSink{buf: dst}
}

// WriteBytes implements ByteSink.
func (s *SliceSink) WriteBytes(p []byte) error {
	if s.cursor+len(p) > len(s.buf) {
		return ErrShortBuffer
	}
	copy(s.buf[s.cursor:], p)
	s.cursor += len(p)
	return nil
}

// Bytes returns the full backing buffer (not just the written prefix).
func (s *SliceSink) Bytes() []byte {
	return s.buf
}

// Written returns the number of bytes written so far.
func (s *SliceSink) Written() int {
	return s.cursor
}

// SliceSource is a ByteSource backed by a slice, handing out sub-slices
// of its own backing store (no copy) as it is read.
type SliceSource struct {
	buf    []byte
	cursor int
}

// NewSliceSource wraps src for sequential exact-length reads.
func NewSliceSource(src []byte) *SliceSource {
	return &SliceSource{buf: src}
}

// ReadBytesExact implements ByteSource.
func (s *SliceSource) ReadBytesExact(n int) ([]byte, error) {
	if s.cursor+n > len(s.buf) {
		return nil, ErrShortBuffer
	}
	out := s.buf[s.cursor : s.cursor+n]
	s.cursor += n
	return out, nil
}

// Remaining reports how many bytes are left unread.
func (s *SliceSource) Remaining() int {
	return len(s.buf) - s.cursor
}
