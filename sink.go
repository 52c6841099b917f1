package filings

import (
	"context"
	"time"
)

// IngestSink accepts one retained file plus its metadata and returns
// an opaque acknowledgment handle. The hosted document-search service
// behind it is treated as a black box.
type IngestSink interface {
	Upload(ctx context.Context, path string, rec *DownloadRecord) (handle string, err error)
}

// Upload records that a retained file was handed to the ingestion sink.
type Upload struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Handle     string    `json:"handle"`
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Validate returns an error if the upload contains invalid fields.
func (u *Upload) Validate() error {
	if u.Filename == "" {
		return Errorf(EINVALID, "upload filename required")
	}
	if u.Handle == "" {
		return Errorf(EINVALID, "upload handle required")
	}
	return nil
}

// UploadLedger tracks which retained files have been uploaded.
type UploadLedger interface {
	// CreateUpload records a completed upload.
	CreateUpload(ctx context.Context, up *Upload) error

	// FindUploadByFilename retrieves an upload by filename.
	// Returns ENOTFOUND if the file has not been uploaded.
	FindUploadByFilename(ctx context.Context, filename string) (*Upload, error)

	// ListUploads retrieves all uploads, oldest first.
	ListUploads(ctx context.Context) ([]*Upload, error)
}
