package mock

import (
	"context"
	"io"

	"github.com/kmtan/filings"
)

var _ filings.Transfer = (*Transfer)(nil)

// Transfer is a mock implementation of filings.Transfer.
type Transfer struct {
	GetFn func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (t *Transfer) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	return t.GetFn(ctx, url)
}
