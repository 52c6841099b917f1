package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/kmtan/filings"
)

var _ filings.BlobStore = (*BlobStore)(nil)

// BlobStore stores downloaded attachments as flat files in a single
// directory. Filenames are assumed pre-sanitized by the caller.
type BlobStore struct {
	dir string
}

// NewBlobStore returns a store rooted at dir. The directory is created
// lazily on first write.
func NewBlobStore(dir string) *BlobStore {
	return &BlobStore{dir: dir}
}

// Write streams r into dir/filename and returns the number of bytes
// written. On any error the partial file is removed so the directory
// never holds truncated attachments.
func (s *BlobStore) Write(filename string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return 0, filings.Errorf(filings.EINTERNAL, "cannot create download directory %q: %v", s.dir, err)
	}

	path := s.Path(filename)
	f, err := os.Create(path)
	if err != nil {
		return 0, filings.Errorf(filings.EINTERNAL, "cannot create file %q: %v", path, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, filings.Errorf(filings.EUNAVAILABLE, "cannot write file %q: %v", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, filings.Errorf(filings.EINTERNAL, "cannot close file %q: %v", path, err)
	}

	return n, nil
}

// Remove deletes dir/filename. A missing file is not an error.
func (s *BlobStore) Remove(filename string) error {
	err := os.Remove(s.Path(filename))
	if err != nil && !os.IsNotExist(err) {
		return filings.Errorf(filings.EINTERNAL, "cannot remove file %q: %v", filename, err)
	}
	return nil
}

// Path returns the absolute-or-relative path where filename lives.
func (s *BlobStore) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}
