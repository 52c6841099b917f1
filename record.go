package filings

import (
	"context"
	"time"
)

// DownloadRecord describes one successfully retained attachment.
// JSON field names match the on-disk history file format.
type DownloadRecord struct {
	SourceURL       string    `json:"pdf_url"`
	Filename        string    `json:"filename"`
	AnnouncementURL string    `json:"announcement_url"`
	Title           string    `json:"announcement_title"`
	RetrievedAt     time.Time `json:"download_date"`
	SizeBytes       int64     `json:"file_size"`
	PublishedDate   string    `json:"date_from_announcement"`
}

// Validate returns an error if the record contains invalid fields.
func (r *DownloadRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if r.Filename == "" {
		return Errorf(EINVALID, "record filename required")
	}
	if r.SizeBytes < 0 {
		return Errorf(EINVALID, "record size must be non-negative")
	}
	return nil
}

// HistoryService is the durable, append-only record of every retained
// attachment plus aggregate storage accounting.
//
// Implementations load the full history once at startup; IsKnown,
// TotalBytes and Len answer from memory. Append persists immediately:
// a failed Append returns an EPERSIST error and leaves the history
// unchanged, and the caller must treat the attachment as not retained.
type HistoryService interface {
	// KnownURL reports whether a record with this source URL exists.
	// Comparisons are exact and case-sensitive.
	KnownURL(sourceURL string) bool

	// KnownFilename reports whether a record with this filename exists.
	KnownFilename(filename string) bool

	// Append adds one record and persists the history before returning.
	Append(ctx context.Context, rec *DownloadRecord) error

	// TotalBytes returns the sum of SizeBytes over all records.
	TotalBytes() int64

	// Len returns the number of records.
	Len() int
}
