package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/kmtan/filings"
	"github.com/kmtan/filings/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLedgerService_CreateUpload(t *testing.T) {
	t.Parallel()

	t.Run("creates and assigns an ID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewLedgerService(openTestDB(t))

		up := &filings.Upload{
			Filename: "2025-10-15_report.pdf",
			Handle:   "files/abc123",
			Title:    "Annual Report",
		}
		require.NoError(t, s.CreateUpload(context.Background(), up))
		assert.NotEmpty(t, up.ID)
		assert.False(t, up.UploadedAt.IsZero())
	})

	t.Run("rejects a second upload for the same filename", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewLedgerService(openTestDB(t))

		up := &filings.Upload{Filename: "a.pdf", Handle: "files/1"}
		require.NoError(t, s.CreateUpload(context.Background(), up))

		err := s.CreateUpload(context.Background(), &filings.Upload{Filename: "a.pdf", Handle: "files/2"})
		require.Error(t, err)
		assert.Equal(t, filings.ECONFLICT, filings.ErrorCode(err))
	})

	t.Run("rejects invalid uploads", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewLedgerService(openTestDB(t))

		err := s.CreateUpload(context.Background(), &filings.Upload{Filename: "a.pdf"})
		require.Error(t, err)
		assert.Equal(t, filings.EINVALID, filings.ErrorCode(err))
	})
}

func TestLedgerService_FindUploadByFilename(t *testing.T) {
	t.Parallel()

	t.Run("finds an existing upload", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewLedgerService(openTestDB(t))

		created := &filings.Upload{
			Filename:   "2025-10-15_report.pdf",
			Handle:     "files/abc123",
			Title:      "Annual Report",
			UploadedAt: time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.CreateUpload(context.Background(), created))

		got, err := s.FindUploadByFilename(context.Background(), "2025-10-15_report.pdf")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "files/abc123", got.Handle)
		assert.Equal(t, "Annual Report", got.Title)
		assert.True(t, created.UploadedAt.Equal(got.UploadedAt))
	})

	t.Run("returns ENOTFOUND for unknown filename", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewLedgerService(openTestDB(t))

		_, err := s.FindUploadByFilename(context.Background(), "missing.pdf")
		require.Error(t, err)
		assert.Equal(t, filings.ENOTFOUND, filings.ErrorCode(err))
	})
}

func TestLedgerService_ListUploads(t *testing.T) {
	t.Parallel()

	s := sqlite.NewLedgerService(openTestDB(t))

	base := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, s.CreateUpload(context.Background(), &filings.Upload{
			Filename:   name,
			Handle:     "files/" + name,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	uploads, err := s.ListUploads(context.Background())
	require.NoError(t, err)
	require.Len(t, uploads, 3)
	assert.Equal(t, "a.pdf", uploads[0].Filename)
	assert.Equal(t, "c.pdf", uploads[2].Filename)
}
