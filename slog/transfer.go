package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/kmtan/filings"
)

// Ensure LoggingTransfer implements filings.Transfer.
var _ filings.Transfer = (*LoggingTransfer)(nil)

// LoggingTransfer wraps a Transfer with debug logging.
type LoggingTransfer struct {
	next   filings.Transfer
	logger *slog.Logger
}

// NewLoggingTransfer creates a new LoggingTransfer.
func NewLoggingTransfer(next filings.Transfer, logger *slog.Logger) *LoggingTransfer {
	return &LoggingTransfer{next: next, logger: logger}
}

// Get delegates to the wrapped transfer and logs the operation.
func (t *LoggingTransfer) Get(ctx context.Context, url string) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		t.logger.Info("download",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Get(ctx, url)
}
