// SPDX-License-Identifier: BSD-3-Clause

package mlock

import "github.com/fractionestate/cardano-crypto-go/seed"

// ConstantTimeEqual re-exports seed.ConstantTimeEqual for convenience at
// secret-comparison call sites within this package's callers.
func ConstantTimeEqual(a, b []byte) bool {
	return seed.ConstantTimeEqual(a, b)
}
