package filings

import "io"

// ContentDigest accumulates bytes and produces a stable hex digest.
type ContentDigest interface {
	io.Writer

	// Sum returns the digest of everything written so far.
	Sum() string
}

// Hasher produces streaming content digests used for duplicate
// detection. Digests are compared for equality only; the digest must
// be wide enough to make collisions negligible at crawl volumes.
type Hasher interface {
	// New returns a fresh digest accumulator.
	New() ContentDigest
}
