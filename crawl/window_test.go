package crawl_test

import (
	"fmt"
	"testing"

	"github.com/kmtan/filings/crawl"
	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	t.Parallel()

	t.Run("matches recorded digest", func(t *testing.T) {
		t.Parallel()

		w := crawl.NewWindow(3)
		w.Record("digest-a", "a.pdf")

		name, ok := w.Match("digest-a")
		assert.True(t, ok)
		assert.Equal(t, "a.pdf", name)

		_, ok = w.Match("digest-b")
		assert.False(t, ok)
	})

	t.Run("holds exactly capacity entries", func(t *testing.T) {
		t.Parallel()

		w := crawl.NewWindow(3)
		for i := 0; i < 10; i++ {
			w.Record(fmt.Sprintf("digest-%d", i), fmt.Sprintf("%d.pdf", i))
		}
		assert.Equal(t, 3, w.Len())
	})

	t.Run("evicts oldest entry first", func(t *testing.T) {
		t.Parallel()

		w := crawl.NewWindow(2)
		w.Record("digest-a", "a.pdf")
		w.Record("digest-b", "b.pdf")
		w.Record("digest-c", "c.pdf")

		_, ok := w.Match("digest-a")
		assert.False(t, ok, "oldest entry should have been evicted")

		_, ok = w.Match("digest-b")
		assert.True(t, ok)
		_, ok = w.Match("digest-c")
		assert.True(t, ok)
	})

	t.Run("zero capacity falls back to default", func(t *testing.T) {
		t.Parallel()

		w := crawl.NewWindow(0)
		assert.Equal(t, crawl.DefaultWindowSize, w.Cap())
	})
}
