package mock

import (
	"context"
	"io"

	"github.com/kmtan/filings"
)

var _ filings.BlobStore = (*BlobStore)(nil)

// BlobStore is a mock implementation of filings.BlobStore.
type BlobStore struct {
	WriteFn  func(filename string, r io.Reader) (int64, error)
	RemoveFn func(filename string) error
	PathFn   func(filename string) string
}

func (s *BlobStore) Write(filename string, r io.Reader) (int64, error) {
	return s.WriteFn(filename, r)
}

func (s *BlobStore) Remove(filename string) error {
	return s.RemoveFn(filename)
}

func (s *BlobStore) Path(filename string) string {
	return s.PathFn(filename)
}

var _ filings.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of filings.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, snap *filings.Snapshot) error
}

func (s *SnapshotStore) Save(ctx context.Context, snap *filings.Snapshot) error {
	return s.SaveFn(ctx, snap)
}
