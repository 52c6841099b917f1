package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kmtan/filings"
)

var _ filings.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore saves markdown snapshots of announcement pages, one
// file per announcement, named <date>_<sanitized title>.md.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore returns a store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

func (s *SnapshotStore) Save(ctx context.Context, snap *filings.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return filings.Errorf(filings.EINTERNAL, "cannot create snapshot directory %q: %v", s.dir, err)
	}

	name := snap.Date + "_" + filings.SanitizeFilename(snap.Title) + ".md"
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, []byte(FormatSnapshot(snap)), 0644); err != nil {
		return filings.Errorf(filings.EINTERNAL, "cannot write snapshot %q: %v", path, err)
	}
	return nil
}

// FormatSnapshot formats a snapshot with YAML frontmatter.
func FormatSnapshot(snap *filings.Snapshot) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(snap.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(snap.Title)
	b.WriteString("\ndate: ")
	b.WriteString(snap.Date)
	b.WriteString("\n---\n\n")
	b.WriteString(snap.Content)
	return b.String()
}
