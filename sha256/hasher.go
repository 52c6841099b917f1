// Package sha256 provides streaming SHA-256 content digests for
// duplicate detection.
package sha256

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"

	"github.com/kmtan/filings"
)

// Ensure Hasher implements filings.Hasher at compile time.
var _ filings.Hasher = (*Hasher)(nil)

// Hasher produces SHA-256 content digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// New returns a fresh digest accumulator.
func (h *Hasher) New() filings.ContentDigest {
	return &digest{h: sha256.New()}
}

type digest struct {
	h hash.Hash
}

func (d *digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum returns the hex-encoded SHA-256 digest of everything written.
func (d *digest) Sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Sum computes the digest of an entire stream.
func Sum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
