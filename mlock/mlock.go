// SPDX-License-Identifier: BSD-3-Clause

// Package mlock implements the secure-memory substrate: page-locked
// buffers that are guaranteed to be zeroed before their backing pages are
// released, for carrying DSIGN and KES signing-key material.
package mlock

import (
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/fractionestate/cardano-crypto-go/internal/disalloweq"
)

// ErrLockFailed is returned when the OS refuses to lock a page. This is
// the default, non-recoverable outcome; see the mlock_insecure build tag
// for the explicit opt-in fallback.
var ErrLockFailed = errors.New("mlock: failed to lock memory pages")

// ErrClosed is returned by any operation on a buffer that has already
// been destroyed.
var ErrClosed = errors.New("mlock: use of destroyed buffer")

var metricsEnabled atomic.Bool

var (
	metricAllocations  atomic.Uint64
	metricBytesLocked  atomic.Uint64
	metricZeroizations atomic.Uint64
	metricLockFailures atomic.Uint64
)

// EnableMetrics toggles the allocation-free counters tracked by this
// package. Counters never expose pointers or buffer contents.
func EnableMetrics(on bool) {
	metricsEnabled.Store(on)
}

// Metrics is a point-in-time snapshot of the package's counters.
type Metrics struct {
	Allocations  uint64
	BytesLocked  uint64
	Zeroizations uint64
	LockFailures uint64
}

// Snapshot returns the current counter values.
func Snapshot() Metrics {
	return Metrics{
		Allocations:  metricAllocations.Load(),
		BytesLocked:  metricBytesLocked.Load(),
		Zeroizations: metricZeroizations.Load(),
		LockFailures: metricLockFailures.Load(),
	}
}

func recordAlloc(n int) {
	if !metricsEnabled.Load() {
		return
	}
	metricAllocations.Add(1)
	metricBytesLocked.Add(uint64(n))
}

func recordZero() {
	if !metricsEnabled.Load() {
		return
	}
	metricZeroizations.Add(1)
}

func recordLockFailure() {
	if !metricsEnabled.Load() {
		return
	}
	metricLockFailures.Add(1)
}

// MLockedBytes is a page-locked buffer of a fixed size whose contents are
// guaranteed to be overwritten with zeros before the backing pages are
// released, either by an explicit call to Destroy or (as a last-resort
// backstop, not the primary erasure path) by a finalizer.
type MLockedBytes struct {
	_ disalloweq.DisallowEqual

	buf    []byte
	locked bool
	closed bool
}

// NewMLockedBytes allocates n bytes of page-locked memory.
func NewMLockedBytes(n int) (*MLockedBytes, error) {
	buf, locked, err := lockedAlloc(n)
	if err != nil {
		recordLockFailure()
		return nil, errors.Join(ErrLockFailed, err)
	}

	m := &MLockedBytes{buf: buf, locked: locked}
	recordAlloc(n)
	runtime.SetFinalizer(m, func(m *MLockedBytes) {
		_ = m.Destroy()
	})
	return m, nil
}

// Bytes returns the buffer's backing slice. The slice aliases the locked
// allocation; callers must not retain it past Destroy.
func (m *MLockedBytes) Bytes() []byte {
	if m.closed {
		return nil
	}
	return m.buf
}

// Len returns the buffer's length in bytes.
func (m *MLockedBytes) Len() int {
	return len(m.buf)
}

// Clone produces a new, independently locked deep copy of m. Cloning is
// always explicit: there is no implicit/shallow copy path for secret
// buffers.
func (m *MLockedBytes) Clone() (*MLockedBytes, error) {
	if m.closed {
		return nil, ErrClosed
	}
	c, err := NewMLockedBytes(len(m.buf))
	if err != nil {
		return nil, err
	}
	copy(c.buf, m.buf)
	return c, nil
}

// Zero overwrites the buffer's contents with zeros immediately, without
// releasing the underlying lock. Safe to call more than once, and safe
// to call before Destroy.
func (m *MLockedBytes) Zero() {
	if m.closed {
		return
	}
	for i := range m.buf {
		m.buf[i] = 0
	}
	recordZero()
}

// Destroy zeroes the buffer, unlocks its pages, and releases the
// allocation. Idempotent: calling Destroy on an already-destroyed buffer
// is a no-op and never returns an error.
func (m *MLockedBytes) Destroy() error {
	if m.closed {
		return nil
	}
	m.Zero()
	var err error
	if m.locked {
		err = unlockMemory(m.buf)
	}
	m.buf = nil
	m.closed = true
	runtime.SetFinalizer(m, nil)
	return err
}

// MLockedSeed is an MLockedBytes known to carry seed material; identical
// lifecycle, distinguished only for readability at call sites.
type MLockedSeed struct {
	*MLockedBytes
}

// NewMLockedSeedFromBytes copies src into a freshly locked buffer. src
// itself is not zeroed; erasing the caller's copy is left to the caller
// (the source slice is not secret-tracked by this package).
func NewMLockedSeedFromBytes(src []byte) (*MLockedSeed, error) {
	m, err := NewMLockedBytes(len(src))
	if err != nil {
		return nil, err
	}
	copy(m.buf, src)
	return &MLockedSeed{MLockedBytes: m}, nil
}
