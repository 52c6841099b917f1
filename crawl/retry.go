package crawl

import (
	"context"
	"time"

	"github.com/kmtan/filings"
)

// RenderFunc is the signature for a detail page render.
type RenderFunc func(ctx context.Context, url string) (*filings.AnnouncementDetail, error)

// DefaultRetryDelays returns the backoff delays for render retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RenderWithRetryDelays renders a detail page, retrying transient
// failures with the given backoff delays (len(delays) retries after
// the initial attempt). Context cancellation stops the retries.
func RenderWithRetryDelays(ctx context.Context, url string, render RenderFunc, delays []time.Duration) (*filings.AnnouncementDetail, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		detail, err := render(ctx, url)
		if err == nil {
			return detail, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
