package crawl

import (
	"sync"

	"github.com/kmtan/filings"
)

// DupReason identifies which deduplication tier matched.
type DupReason string

// Deduplication tiers, cheapest first.
const (
	DupSameBatch DupReason = "filename already downloaded from this announcement"
	DupURL       DupReason = "URL already in history"
	DupFilename  DupReason = "filename already in history"
	DupContent   DupReason = "same content as a recent download"
)

// Verdict is the outcome of a deduplication check.
type Verdict struct {
	Duplicate   bool
	Reason      DupReason
	MatchedName string // filename of the earlier copy, when known
}

// Unique is the verdict for content that matched no tier.
var Unique = Verdict{}

// Batch tracks the filenames retained so far from a single
// announcement. It guards against a page offering the same file
// through a primary link and a "click here" fallback link. Names are
// marked only on successful retention so a fallback link can still be
// tried after a failed transfer.
type Batch struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// NewBatch creates an empty per-announcement batch set.
func NewBatch() *Batch {
	return &Batch{names: make(map[string]struct{})}
}

// Mark records a retained filename.
func (b *Batch) Mark(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names[name] = struct{}{}
}

// Has reports whether a filename was already retained in this batch.
func (b *Batch) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.names[name]
	return ok
}

// Deduper composes the history store and the recency window into a
// single tiered duplicate verdict. Tiers run in a fixed order with the
// first match winning: same-batch name, history URL key, history
// filename key, and finally the content digest. The digest tier needs
// the bytes already transferred, so it is exposed separately and runs
// last.
type Deduper struct {
	history filings.HistoryService
	window  *Window
}

// NewDeduper creates a Deduper over a history store and a recency window.
func NewDeduper(history filings.HistoryService, window *Window) *Deduper {
	return &Deduper{history: history, window: window}
}

// CheckKeys runs the pre-transfer tiers (same-batch name, URL key,
// filename key). A duplicate verdict here means the attachment can be
// skipped with no network transfer.
func (d *Deduper) CheckKeys(sourceURL, filename string, batch *Batch) Verdict {
	if batch != nil && batch.Has(filename) {
		return Verdict{Duplicate: true, Reason: DupSameBatch, MatchedName: filename}
	}
	if d.history.KnownURL(sourceURL) {
		return Verdict{Duplicate: true, Reason: DupURL}
	}
	if d.history.KnownFilename(filename) {
		return Verdict{Duplicate: true, Reason: DupFilename, MatchedName: filename}
	}
	return Unique
}

// CheckContent runs the digest tier against the recency window.
func (d *Deduper) CheckContent(digest string) Verdict {
	if name, ok := d.window.Match(digest); ok {
		return Verdict{Duplicate: true, Reason: DupContent, MatchedName: name}
	}
	return Unique
}

// Commit registers a retained attachment's digest in the recency
// window. Call after the record has been appended to history.
func (d *Deduper) Commit(digest, filename string) {
	d.window.Record(digest, filename)
}
