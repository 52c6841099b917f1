package filings_test

import (
	"testing"
	"time"

	"github.com/kmtan/filings"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := filings.Errorf(filings.ENOTFOUND, "record %q not found", "test")

	assert.Equal(t, filings.ENOTFOUND, filings.ErrorCode(err))
	assert.Equal(t, "record \"test\" not found", filings.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, filings.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, filings.ErrorMessage(nil))
}

func TestDownloadRecord_Validate(t *testing.T) {
	t.Parallel()

	valid := filings.DownloadRecord{
		SourceURL:   "https://example.com/a.pdf",
		Filename:    "2024-01-02_a.pdf",
		RetrievedAt: time.Now(),
		SizeBytes:   10,
	}

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()
		rec := valid
		assert.NoError(t, rec.Validate())
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()
		rec := valid
		rec.SourceURL = ""
		assert.Equal(t, filings.EINVALID, filings.ErrorCode(rec.Validate()))
	})

	t.Run("missing filename", func(t *testing.T) {
		t.Parallel()
		rec := valid
		rec.Filename = ""
		assert.Equal(t, filings.EINVALID, filings.ErrorCode(rec.Validate()))
	})

	t.Run("negative size", func(t *testing.T) {
		t.Parallel()
		rec := valid
		rec.SizeBytes = -1
		assert.Equal(t, filings.EINVALID, filings.ErrorCode(rec.Validate()))
	})
}
