package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmtan/filings"
)

// UnknownTitle is the title recorded when a detail page carries none.
const UnknownTitle = "Unknown Announcement"

// AnnouncementResult summarizes the processing of one detail page.
type AnnouncementResult struct {
	URL       string
	Title     string
	Published time.Time
	DateKnown bool // false when the page date was unparseable

	Attempted int
	Retained  int
	Skipped   int
}

// Processor handles one announcement: it renders the detail page,
// extracts title and publication date, and drives the Downloader over
// each attachment with a shared per-announcement batch set.
//
// Extractor, Converter and Snapshots are optional; when all three are
// set, the rendered page's readable content is saved as a markdown
// snapshot alongside the attachments. Snapshot failures never fail
// the announcement.
type Processor struct {
	Source     filings.Source
	Downloader *Downloader

	Extractor filings.Extractor
	Converter filings.Converter
	Snapshots filings.SnapshotStore

	// RetryDelays configures detail render retries; nil uses
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger

	// Now is the clock for the date fallback; defaults to time.Now.
	Now func() time.Time
}

// Process renders and processes one announcement. It fails only when
// the detail page itself cannot be rendered or when a history append
// fails (EPERSIST); every per-attachment fault becomes a skip counted
// in the result.
func (p *Processor) Process(ctx context.Context, url string) (*AnnouncementResult, error) {
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	detail, err := RenderWithRetryDelays(ctx, url, p.Source.RenderDetail, delays)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	published, dateKnown := ParseAnnouncementDate(detail.DateText, now())
	dateStr := published.Format("2006-01-02")

	title := detail.Title
	if title == "" {
		title = UnknownTitle
	}

	result := &AnnouncementResult{
		URL:       url,
		Title:     title,
		Published: published,
		DateKnown: dateKnown,
	}

	meta := AttachmentMeta{
		AnnouncementURL: url,
		Title:           title,
		Date:            dateStr,
	}

	batch := NewBatch()
	for _, att := range detail.Attachments {
		result.Attempted++

		outcome, err := p.Downloader.FetchAndMaybeRetain(ctx, att, meta, batch)
		if err != nil {
			return nil, err
		}

		if outcome.Retained {
			result.Retained++
			continue
		}
		result.Skipped++
		if p.Logger != nil {
			p.Logger.Info("skip attachment",
				"announcement", url,
				"attachment", att.URL,
				"reason", outcome.Reason,
			)
		}
	}

	p.saveSnapshot(ctx, detail, title, dateStr)

	return result, nil
}

// saveSnapshot stores the page's readable content as markdown when the
// snapshot pipeline is wired. Best-effort only.
func (p *Processor) saveSnapshot(ctx context.Context, detail *filings.AnnouncementDetail, title, date string) {
	if p.Extractor == nil || p.Converter == nil || p.Snapshots == nil || detail.HTML == "" {
		return
	}

	extracted, err := p.Extractor.Extract(detail.HTML)
	if err != nil || extracted.ContentHTML == "" {
		return
	}

	markdown, err := p.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return
	}

	snap := &filings.Snapshot{
		URL:     detail.URL,
		Title:   title,
		Date:    date,
		Content: markdown,
	}
	if err := p.Snapshots.Save(ctx, snap); err != nil && p.Logger != nil {
		p.Logger.Warn("snapshot save failed", "announcement", detail.URL, "err", err)
	}
}
