// SPDX-License-Identifier: BSD-3-Clause

// Package disalloweq makes structs carrying secret material unusable
// with the `==` operator, so a signing key can never be compared in
// variable time by accident.
package disalloweq

// DisallowEqual, embedded as a blank field, causes the compiler to
// reject `==` on the enclosing struct (func values are not comparable).
// Secret-bearing types must be compared, if at all, through
// seed.ConstantTimeEqual on their serialized forms.
type DisallowEqual [0]func()
