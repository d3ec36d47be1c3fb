// SPDX-License-Identifier: BSD-3-Clause

//go:build !mlock_insecure && windows

package mlock

import "golang.org/x/sys/windows"

// lockedAlloc allocates n bytes and locks them against swap via VirtualLock.
func lockedAlloc(n int) ([]byte, bool, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, false, nil
	}
	if err := windows.VirtualLock(buf); err != nil {
		return nil, false, err
	}
	return buf, true, nil
}

func unlockMemory(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return windows.VirtualUnlock(buf)
}
