package filings

import (
	"context"
	"io"
)

// Transfer retrieves attachment bytes over plain HTTP.
//
// Get returns the response body as a stream the caller must close.
// Non-2xx responses, timeouts and connection failures are reported as
// EUNAVAILABLE errors so callers can distinguish transient network
// faults from success.
type Transfer interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}
