// Package slog provides logging decorators for the crawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmtan/filings"
)

// Ensure LoggingSource implements filings.Source.
var _ filings.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   filings.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next filings.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// ListPage delegates to the wrapped source and logs the operation.
func (s *LoggingSource) ListPage(ctx context.Context, page int) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list page",
			"page", page,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListPage(ctx, page)
}

// RenderDetail delegates to the wrapped source and logs the operation.
func (s *LoggingSource) RenderDetail(ctx context.Context, url string) (detail *filings.AnnouncementDetail, err error) {
	defer func(begin time.Time) {
		attachments := 0
		if detail != nil {
			attachments = len(detail.Attachments)
		}
		s.logger.Info("render detail",
			"url", url,
			"attachments", attachments,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RenderDetail(ctx, url)
}
