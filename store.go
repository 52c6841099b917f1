package filings

import (
	"context"
	"io"
)

// BlobStore persists attachment files under their final filenames.
type BlobStore interface {
	// Write streams r to a file named filename and returns the number
	// of bytes written. A failed write leaves no partial file behind.
	Write(filename string, r io.Reader) (int64, error)

	// Remove deletes a previously written file. Removing a file that
	// does not exist is not an error.
	Remove(filename string) error

	// Path returns the absolute or store-relative path of a file.
	Path(filename string) string
}

// Snapshot is the readable content of a rendered announcement page.
type Snapshot struct {
	URL     string
	Title   string
	Date    string // YYYY-MM-DD
	Content string // Markdown
}

// SnapshotStore persists announcement page snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
}
