package bloom_test

import (
	"testing"

	"github.com/kmtan/filings/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.New(1000, 0.01)

	assert.False(t, f.Test("https://example.com/announcement/1"))

	f.Add("https://example.com/announcement/1")

	assert.True(t, f.Test("https://example.com/announcement/1"))
	assert.False(t, f.Test("https://example.com/announcement/2"))
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.New(1000, 0.01)

	url := "https://example.com/announcement/1"

	f.Add(url)
	countAfterFirst := f.EstimatedCount()

	f.Add(url)
	f.Add(url)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(url))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.New(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/announcement/1")
	f.Add("https://example.com/announcement/2")
	f.Add("https://example.com/announcement/3")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}
