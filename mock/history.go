package mock

import (
	"context"

	"github.com/kmtan/filings"
)

var _ filings.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of filings.HistoryService.
type HistoryService struct {
	KnownURLFn      func(sourceURL string) bool
	KnownFilenameFn func(filename string) bool
	AppendFn        func(ctx context.Context, rec *filings.DownloadRecord) error
	TotalBytesFn    func() int64
	LenFn           func() int
}

func (s *HistoryService) KnownURL(sourceURL string) bool {
	return s.KnownURLFn(sourceURL)
}

func (s *HistoryService) KnownFilename(filename string) bool {
	return s.KnownFilenameFn(filename)
}

func (s *HistoryService) Append(ctx context.Context, rec *filings.DownloadRecord) error {
	return s.AppendFn(ctx, rec)
}

func (s *HistoryService) TotalBytes() int64 {
	return s.TotalBytesFn()
}

func (s *HistoryService) Len() int {
	return s.LenFn()
}
