// SPDX-License-Identifier: BSD-3-Clause

//go:build mlock_insecure

// This file is the explicit insecure fallback: when built with the
// mlock_insecure tag, secret buffers are heap-allocated without
// mlock(2)/VirtualLock, and are therefore swappable. The
// zero-on-destroy invariant still holds; only the "never hits swap"
// invariant is relaxed. This build tag must never be set for a
// production signer.
package mlock

// lockedAlloc allocates n bytes without attempting to lock them.
func lockedAlloc(n int) ([]byte, bool, error) {
	return make([]byte, n), false, nil
}

func unlockMemory(_ []byte) error {
	return nil
}
