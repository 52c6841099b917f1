package mock

import "github.com/kmtan/filings"

var _ filings.Hasher = (*Hasher)(nil)

// Hasher is a mock implementation of filings.Hasher.
type Hasher struct {
	NewFn func() filings.ContentDigest
}

func (h *Hasher) New() filings.ContentDigest {
	return h.NewFn()
}

var _ filings.ContentDigest = (*ContentDigest)(nil)

// ContentDigest is a mock implementation of filings.ContentDigest.
type ContentDigest struct {
	WriteFn func(p []byte) (int, error)
	SumFn   func() string
}

func (d *ContentDigest) Write(p []byte) (int, error) {
	if d.WriteFn != nil {
		return d.WriteFn(p)
	}
	return len(p), nil
}

func (d *ContentDigest) Sum() string {
	return d.SumFn()
}
