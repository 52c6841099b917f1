package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kmtan/filings"
	main "github.com/kmtan/filings/cmd/filings"
	"github.com/kmtan/filings/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededHistory(t *testing.T, n int) *fs.HistoryStore {
	t.Helper()

	history, err := fs.OpenHistory(filepath.Join(t.TempDir(), "download_history.json"))
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.NoError(t, history.Append(context.Background(), &filings.DownloadRecord{
			SourceURL:       "https://example.com/files/" + string(rune('a'+i)) + ".pdf",
			Filename:        "2025-10-15_" + string(rune('a'+i)) + ".pdf",
			AnnouncementURL: "https://example.com/announcements/1",
			Title:           "Annual Report",
			RetrievedAt:     time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
			SizeBytes:       1000,
			PublishedDate:   "2025-10-15",
		}))
	}
	return history
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows totals and recent downloads", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			History: seededHistory(t, 2),
		}

		cmd := &main.StatusCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Downloads:    2")
		assert.Contains(t, output, "2.0 KB")
		assert.Contains(t, output, "2025-10-15_a.pdf")
		assert.Contains(t, output, "2025-10-15_b.pdf")
	})

	t.Run("shows helpful message when history is empty", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			History: seededHistory(t, 0),
		}

		cmd := &main.StatusCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No downloads recorded")
	})
}
