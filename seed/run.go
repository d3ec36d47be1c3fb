// SPDX-License-Identifier: BSD-3-Clause

package seed

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// RunWithSeed exposes a deterministic, domain-separated byte stream
// derived solely from s and the supplied labels, for callers that need
// a named deterministic RNG rather than a single fixed-size expansion.
// The returned io.Reader's state depends only on its inputs: no
// suspension, no ambient entropy. Callers that want nondeterminism can
// layer it on top of, never instead of, a seed.
func RunWithSeed(s Seed, labels ...[]byte) io.Reader {
	var customization []byte
	for _, l := range labels {
		customization = append(customization, l...)
	}
	xof := sha3.NewCShake256(nil, customization)
	_, _ = xof.Write(s.Bytes())
	return xof
}
