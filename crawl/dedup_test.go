package crawl_test

import (
	"testing"

	"github.com/kmtan/filings/crawl"
	"github.com/kmtan/filings/mock"
	"github.com/stretchr/testify/assert"
)

func TestDeduper_CheckKeys(t *testing.T) {
	t.Parallel()

	t.Run("unique when no tier matches", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			KnownURLFn:      func(string) bool { return false },
			KnownFilenameFn: func(string) bool { return false },
		}
		d := crawl.NewDeduper(history, crawl.NewWindow(3))

		v := d.CheckKeys("https://example.com/a.pdf", "2025-10-15_a.pdf", crawl.NewBatch())
		assert.False(t, v.Duplicate)
	})

	t.Run("same-batch name wins before history is consulted", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			KnownURLFn:      func(string) bool { t.Fatal("history should not be consulted"); return false },
			KnownFilenameFn: func(string) bool { t.Fatal("history should not be consulted"); return false },
		}
		d := crawl.NewDeduper(history, crawl.NewWindow(3))

		batch := crawl.NewBatch()
		batch.Mark("2025-10-15_a.pdf")

		v := d.CheckKeys("https://example.com/a.pdf", "2025-10-15_a.pdf", batch)
		assert.True(t, v.Duplicate)
		assert.Equal(t, crawl.DupSameBatch, v.Reason)
	})

	t.Run("URL key wins before filename key", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			KnownURLFn:      func(string) bool { return true },
			KnownFilenameFn: func(string) bool { t.Fatal("filename tier should not run"); return false },
		}
		d := crawl.NewDeduper(history, crawl.NewWindow(3))

		v := d.CheckKeys("https://example.com/a.pdf", "2025-10-15_a.pdf", crawl.NewBatch())
		assert.True(t, v.Duplicate)
		assert.Equal(t, crawl.DupURL, v.Reason)
	})

	t.Run("filename key matches", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			KnownURLFn:      func(string) bool { return false },
			KnownFilenameFn: func(string) bool { return true },
		}
		d := crawl.NewDeduper(history, crawl.NewWindow(3))

		v := d.CheckKeys("https://example.com/a.pdf", "2025-10-15_a.pdf", crawl.NewBatch())
		assert.True(t, v.Duplicate)
		assert.Equal(t, crawl.DupFilename, v.Reason)
		assert.Equal(t, "2025-10-15_a.pdf", v.MatchedName)
	})

	t.Run("nil batch skips the batch tier", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			KnownURLFn:      func(string) bool { return false },
			KnownFilenameFn: func(string) bool { return false },
		}
		d := crawl.NewDeduper(history, crawl.NewWindow(3))

		v := d.CheckKeys("https://example.com/a.pdf", "2025-10-15_a.pdf", nil)
		assert.False(t, v.Duplicate)
	})
}

func TestDeduper_CheckContent(t *testing.T) {
	t.Parallel()

	history := &mock.HistoryService{
		KnownURLFn:      func(string) bool { return false },
		KnownFilenameFn: func(string) bool { return false },
	}
	d := crawl.NewDeduper(history, crawl.NewWindow(3))

	v := d.CheckContent("digest-a")
	assert.False(t, v.Duplicate)

	d.Commit("digest-a", "2025-10-15_a.pdf")

	v = d.CheckContent("digest-a")
	assert.True(t, v.Duplicate)
	assert.Equal(t, crawl.DupContent, v.Reason)
	assert.Equal(t, "2025-10-15_a.pdf", v.MatchedName)
}

func TestBatch(t *testing.T) {
	t.Parallel()

	b := crawl.NewBatch()
	assert.False(t, b.Has("a.pdf"))

	b.Mark("a.pdf")
	assert.True(t, b.Has("a.pdf"))
	assert.False(t, b.Has("b.pdf"))
}
