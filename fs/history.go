// Package fs provides file-based storage: the durable JSON download
// history, the attachment blob directory, and markdown page snapshots.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/kmtan/filings"
)

// Ensure HistoryStore implements filings.HistoryService at compile time.
var _ filings.HistoryService = (*HistoryStore)(nil)

// HistoryStore is the durable, append-only download history backed by
// a single JSON file. The whole history is held in memory with
// xxhash-keyed indexes for O(1) URL/filename lookups; every append
// rewrites the file via write-to-temp-then-rename so a crash between
// writes never corrupts the previous valid version.
//
// HistoryStore is safe for concurrent use; appends are serialized.
type HistoryStore struct {
	mu          sync.Mutex
	path        string
	records     []*filings.DownloadRecord
	urls        map[uint64]struct{}
	names       map[uint64]struct{}
	totalBytes  int64
	lastUpdated time.Time
}

// historyFile is the on-disk envelope.
type historyFile struct {
	LastUpdated    *time.Time                `json:"last_updated"`
	TotalDownloads int                       `json:"total_downloads"`
	Downloads      []*filings.DownloadRecord `json:"downloads"`
}

// OpenHistory loads the history file at path. A missing file yields an
// empty history. An existing but unparseable file yields an empty
// history AND an ECORRUPT error: the caller decides whether to warn
// and start fresh or abort.
func OpenHistory(path string) (*HistoryStore, error) {
	s := &HistoryStore{
		path:  path,
		urls:  make(map[uint64]struct{}),
		names: make(map[uint64]struct{}),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, filings.Errorf(filings.ECORRUPT, "cannot read history file %q: %v", path, err)
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return s, filings.Errorf(filings.ECORRUPT, "cannot parse history file %q: %v", path, err)
	}

	for _, rec := range file.Downloads {
		s.index(rec)
	}
	if file.LastUpdated != nil {
		s.lastUpdated = *file.LastUpdated
	}

	return s, nil
}

// index adds a record to the in-memory state. Caller holds mu or is
// still constructing the store.
func (s *HistoryStore) index(rec *filings.DownloadRecord) {
	s.records = append(s.records, rec)
	s.urls[key(rec.SourceURL)] = struct{}{}
	s.names[key(rec.Filename)] = struct{}{}
	s.totalBytes += rec.SizeBytes
}

// KnownURL reports whether a record with this source URL exists.
func (s *HistoryStore) KnownURL(sourceURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.urls[key(sourceURL)]
	return ok
}

// KnownFilename reports whether a record with this filename exists.
func (s *HistoryStore) KnownFilename(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.names[key(filename)]
	return ok
}

// Append adds one record and persists the history before returning.
// A persist failure leaves the in-memory state unchanged and returns
// an EPERSIST error; the caller must treat the attachment as not
// retained.
func (s *HistoryStore) Append(ctx context.Context, rec *filings.DownloadRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[key(rec.SourceURL)]; ok {
		return filings.Errorf(filings.ECONFLICT, "source URL %q already in history", rec.SourceURL)
	}
	if _, ok := s.names[key(rec.Filename)]; ok {
		return filings.Errorf(filings.ECONFLICT, "filename %q already in history", rec.Filename)
	}

	s.index(rec)
	s.lastUpdated = time.Now().UTC()

	if err := s.persist(); err != nil {
		// Roll back so accounting never drifts from disk.
		s.records = s.records[:len(s.records)-1]
		delete(s.urls, key(rec.SourceURL))
		delete(s.names, key(rec.Filename))
		s.totalBytes -= rec.SizeBytes
		return filings.Errorf(filings.EPERSIST, "cannot persist history to %q: %v", s.path, err)
	}

	return nil
}

// persist writes the full history atomically. Caller holds mu.
func (s *HistoryStore) persist() error {
	file := historyFile{
		LastUpdated:    &s.lastUpdated,
		TotalDownloads: len(s.records),
		Downloads:      s.records,
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// TotalBytes returns the sum of SizeBytes over all records.
func (s *HistoryStore) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytes
}

// Len returns the number of records.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of all records in discovery order.
func (s *HistoryStore) Records() []*filings.DownloadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*filings.DownloadRecord, len(s.records))
	copy(out, s.records)
	return out
}

// LastUpdated returns when the history was last persisted.
func (s *HistoryStore) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

// key hashes a lookup key for the in-memory indexes. Exact,
// case-sensitive matching by hashing the exact string.
func key(v string) uint64 {
	return xxhash.Sum64String(v)
}
