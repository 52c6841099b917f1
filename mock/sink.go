package mock

import (
	"context"

	"github.com/kmtan/filings"
)

var _ filings.IngestSink = (*IngestSink)(nil)

// IngestSink is a mock implementation of filings.IngestSink.
type IngestSink struct {
	UploadFn func(ctx context.Context, path string, rec *filings.DownloadRecord) (string, error)
}

func (s *IngestSink) Upload(ctx context.Context, path string, rec *filings.DownloadRecord) (string, error) {
	return s.UploadFn(ctx, path, rec)
}

var _ filings.UploadLedger = (*UploadLedger)(nil)

// UploadLedger is a mock implementation of filings.UploadLedger.
type UploadLedger struct {
	CreateUploadFn         func(ctx context.Context, up *filings.Upload) error
	FindUploadByFilenameFn func(ctx context.Context, filename string) (*filings.Upload, error)
	ListUploadsFn          func(ctx context.Context) ([]*filings.Upload, error)
}

func (l *UploadLedger) CreateUpload(ctx context.Context, up *filings.Upload) error {
	return l.CreateUploadFn(ctx, up)
}

func (l *UploadLedger) FindUploadByFilename(ctx context.Context, filename string) (*filings.Upload, error) {
	return l.FindUploadByFilenameFn(ctx, filename)
}

func (l *UploadLedger) ListUploads(ctx context.Context) ([]*filings.Upload, error) {
	return l.ListUploadsFn(ctx)
}
