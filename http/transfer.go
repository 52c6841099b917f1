// Package http provides the attachment download client and an RSS/Atom
// feed-backed announcement source.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/kmtan/filings"
)

// DefaultTimeout bounds a single attachment download.
const DefaultTimeout = 30 * time.Second

// Ensure Transfer implements filings.Transfer at compile time.
var _ filings.Transfer = (*Transfer)(nil)

// Transfer downloads attachment bodies over HTTP.
type Transfer struct {
	client  *http.Client
	timeout time.Duration
}

// TransferOption configures a Transfer.
type TransferOption func(*Transfer)

// WithTimeout sets the per-download timeout.
func WithTimeout(d time.Duration) TransferOption {
	return func(t *Transfer) {
		t.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) TransferOption {
	return func(t *Transfer) {
		t.client = c
	}
}

// NewTransfer creates a Transfer with the default client and timeout.
func NewTransfer(opts ...TransferOption) *Transfer {
	t := &Transfer{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get streams the body at url. The caller must close the returned
// reader; closing it releases the per-download timeout. Network faults
// and non-2xx statuses come back as EUNAVAILABLE so the caller can
// treat them as recoverable skips.
func (t *Transfer) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, filings.Errorf(filings.EINVALID, "invalid download URL %q: %v", url, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		cancel()
		return nil, filings.Errorf(filings.EUNAVAILABLE, "GET %s: %v", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, filings.Errorf(filings.EUNAVAILABLE, "GET %s: unexpected status %d", url, resp.StatusCode)
	}

	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelReadCloser ties the download timeout's cancel func to the
// body's lifetime.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
