package crawl

import "sync"

// DefaultWindowSize is the default recency window capacity.
const DefaultWindowSize = 50

// Window is a bounded FIFO cache of the most recent content digests.
// It catches the same bytes published again under a different name
// shortly after the original, which the history's URL and filename
// keys cannot see. The bound is a deliberate memory/completeness
// trade-off: content older than the window is legitimately re-accepted.
//
// Window is safe for concurrent use.
type Window struct {
	mu      sync.Mutex
	cap     int
	entries []windowEntry
}

type windowEntry struct {
	digest   string
	filename string
}

// NewWindow creates a Window holding at most capacity entries.
// A capacity of zero or less falls back to DefaultWindowSize.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Window{cap: capacity}
}

// Match returns the filename previously recorded for digest,
// if the digest is still inside the window.
func (w *Window) Match(digest string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range w.entries {
		if e.digest == digest {
			return e.filename, true
		}
	}
	return "", false
}

// Record inserts a (digest, filename) pair, evicting the oldest entry
// when the window is at capacity.
func (w *Window) Record(digest, filename string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, windowEntry{digest: digest, filename: filename})
	if len(w.entries) > w.cap {
		w.entries = w.entries[1:]
	}
}

// Len returns the number of entries currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return w.cap
}
