package crawl_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kmtan/filings"
	"github.com/kmtan/filings/crawl"
	"github.com/kmtan/filings/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(detail *filings.AnnouncementDetail, history *memHistory, transfer *mock.Transfer) *crawl.Processor {
	return &crawl.Processor{
		Source: &mock.Source{
			RenderDetailFn: func(ctx context.Context, url string) (*filings.AnnouncementDetail, error) {
				return detail, nil
			},
		},
		Downloader:  newDownloader(history, newMemBlobs(), transfer),
		RetryDelays: []time.Duration{},
		Now:         func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
}

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("processes attachments and parses the date", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:      "https://example.com/announcements/123",
			Title:    "Annual Report",
			DateText: "15 Oct 2025 08:30 PM",
			Attachments: []filings.AttachmentLink{
				{URL: "https://example.com/files/a.pdf", Label: "a.pdf"},
				{URL: "https://example.com/files/b.pdf", Label: "b.pdf"},
			},
		}
		history := &memHistory{}
		transfer := &mock.Transfer{
			GetFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("content of " + url)), nil
			},
		}
		p := newProcessor(detail, history, transfer)

		result, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		assert.Equal(t, "Annual Report", result.Title)
		assert.True(t, result.DateKnown)
		assert.Equal(t, "2025-10-15", result.Published.Format("2006-01-02"))
		assert.Equal(t, 2, result.Attempted)
		assert.Equal(t, 2, result.Retained)
		assert.Equal(t, 0, result.Skipped)

		require.Equal(t, 2, len(history.records))
		assert.Equal(t, "2025-10-15_a.pdf", history.records[0].Filename)
	})

	t.Run("unparseable date falls back to the run date", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:         "https://example.com/announcements/123",
			Title:       "Annual Report",
			DateText:    "sometime recently",
			Attachments: []filings.AttachmentLink{{URL: "https://example.com/files/a.pdf", Label: "a.pdf"}},
		}
		history := &memHistory{}
		p := newProcessor(detail, history, bodyTransfer("x"))

		result, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		assert.False(t, result.DateKnown)
		assert.Equal(t, "2026-01-02", result.Published.Format("2006-01-02"))

		require.Equal(t, 1, len(history.records))
		assert.Equal(t, "2026-01-02_a.pdf", history.records[0].Filename)
		assert.Equal(t, "2026-01-02", history.records[0].PublishedDate)
	})

	t.Run("missing title becomes the unknown placeholder", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:      "https://example.com/announcements/123",
			DateText: "15 Oct 2025",
		}
		p := newProcessor(detail, &memHistory{}, bodyTransfer("x"))

		result, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		assert.Equal(t, crawl.UnknownTitle, result.Title)
	})

	t.Run("fallback link for a retained file is skipped", func(t *testing.T) {
		t.Parallel()

		// Primary link plus a "click here" fallback resolving to the
		// same filename.
		detail := &filings.AnnouncementDetail{
			URL:      "https://example.com/announcements/123",
			Title:    "Annual Report",
			DateText: "15 Oct 2025",
			Attachments: []filings.AttachmentLink{
				{URL: "https://example.com/files/report.pdf", Label: "report.pdf"},
				{URL: "https://example.com/files/report.pdf?fallback=1", Label: "report.pdf"},
			},
		}
		history := &memHistory{}
		p := newProcessor(detail, history, bodyTransfer("pdf bytes"))

		result, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Retained)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, len(history.records))
	})

	t.Run("fallback link is still tried after a failed primary", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:      "https://example.com/announcements/123",
			Title:    "Annual Report",
			DateText: "15 Oct 2025",
			Attachments: []filings.AttachmentLink{
				{URL: "https://example.com/files/report.pdf", Label: "report.pdf"},
				{URL: "https://example.com/files/report.pdf?fallback=1", Label: "report.pdf"},
			},
		}
		history := &memHistory{}
		calls := 0
		transfer := &mock.Transfer{
			GetFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
				calls++
				if calls == 1 {
					return nil, filings.Errorf(filings.EUNAVAILABLE, "GET %s: 503", url)
				}
				return io.NopCloser(strings.NewReader("pdf bytes")), nil
			},
		}
		p := newProcessor(detail, history, transfer)

		result, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Retained)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 2, calls)
	})

	t.Run("render failure fails the announcement", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Processor{
			Source: &mock.Source{
				RenderDetailFn: func(ctx context.Context, url string) (*filings.AnnouncementDetail, error) {
					return nil, filings.Errorf(filings.EUNAVAILABLE, "render timed out")
				},
			},
			Downloader:  newDownloader(&memHistory{}, newMemBlobs(), bodyTransfer("x")),
			RetryDelays: []time.Duration{},
		}

		_, err := p.Process(context.Background(), "https://example.com/announcements/123")
		require.Error(t, err)
		assert.Equal(t, filings.EUNAVAILABLE, filings.ErrorCode(err))
	})

	t.Run("history append failure escalates", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:         "https://example.com/announcements/123",
			Title:       "Annual Report",
			DateText:    "15 Oct 2025",
			Attachments: []filings.AttachmentLink{{URL: "https://example.com/files/a.pdf", Label: "a.pdf"}},
		}
		history := &memHistory{appendErr: filings.Errorf(filings.EPERSIST, "disk full")}
		p := newProcessor(detail, history, bodyTransfer("x"))

		_, err := p.Process(context.Background(), detail.URL)
		require.Error(t, err)
		assert.Equal(t, filings.EPERSIST, filings.ErrorCode(err))
	})

	t.Run("saves a markdown snapshot when wired", func(t *testing.T) {
		t.Parallel()

		detail := &filings.AnnouncementDetail{
			URL:      "https://example.com/announcements/123",
			Title:    "Annual Report",
			DateText: "15 Oct 2025",
			HTML:     "<html><body><h1>Annual Report</h1><p>Body</p></body></html>",
		}
		p := newProcessor(detail, &memHistory{}, bodyTransfer("x"))

		var saved *filings.Snapshot
		p.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*filings.ExtractResult, error) {
				return &filings.ExtractResult{Title: "Annual Report", ContentHTML: "<h1>Annual Report</h1>"}, nil
			},
		}
		p.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "# Annual Report", nil },
		}
		p.Snapshots = &mock.SnapshotStore{
			SaveFn: func(ctx context.Context, snap *filings.Snapshot) error {
				saved = snap
				return nil
			},
		}

		_, err := p.Process(context.Background(), detail.URL)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "Annual Report", saved.Title)
		assert.Equal(t, "2025-10-15", saved.Date)
		assert.Equal(t, "# Annual Report", saved.Content)
	})
}
