// Package crawl provides the incremental crawl-and-ingest engine: the
// page-by-page traversal of an announcement listing, per-announcement
// attachment downloading, tiered deduplication against a durable
// download history, and the termination state machine (storage budget,
// content-age boundary, exhausted source).
package crawl

import (
	"context"
	"time"

	"github.com/kmtan/filings"
	"github.com/kmtan/filings/bloom"
)

// StopReason explains why a crawl run ended.
type StopReason string

// Stop reasons, in the priority order the driver checks them.
const (
	StopBudget    StopReason = "storage budget reached"
	StopExhausted StopReason = "no more announcements"
	StopBoundary  StopReason = "boundary date reached"
	StopPageLimit StopReason = "page limit reached"
	StopCanceled  StopReason = "canceled"
)

// Result holds the outcome of a crawl run.
type Result struct {
	Pages         int
	Announcements int
	Retained      int
	Skipped       int
	Failed        int
	TotalBytes    int64
	Stop          StopReason
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressPageStarted ProgressType = iota
	ProgressProcessed
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type     ProgressType
	Page     int
	URL      string
	Retained int
	Skipped  int
	Error    error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawler owns the page-by-page traversal and the termination state
// machine. Before each document it checks, in priority order: the
// storage budget (hard resource ceiling, stops immediately even
// mid-page), source exhaustion (an empty listing page), and the
// content-age boundary (lenient: the page in flight is finished before
// stopping, so a page is never left half-scraped). When the budget and
// the boundary could both fire on the same document, the budget wins.
type Crawler struct {
	Source    filings.Source
	Processor *Processor
	History   filings.HistoryService

	// StorageBudget is the ceiling on cumulative retained bytes.
	// Zero or negative means unlimited.
	StorageBudget int64

	// Boundary stops the crawl once a document published at or before
	// it is seen. The zero value disables the boundary.
	Boundary time.Time

	// Visited skips announcement URLs already processed this run;
	// listings shift under the crawler as new announcements land.
	// Optional.
	Visited *bloom.Filter

	// MaxPages caps the number of listing pages visited.
	// Zero means no cap.
	MaxPages int

	Progress ProgressFunc
}

// Run executes the crawl until a stop condition fires. The returned
// Result is valid even alongside a non-nil error; an error is returned
// only for faults that must end the run (persistence failures, listing
// failures, cancellation).
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	result := &Result{}
	boundaryReached := false

	defer func() {
		result.TotalBytes = c.History.TotalBytes()
		c.emit(ProgressEvent{Type: ProgressFinished})
	}()

	for page := 1; ; page++ {
		if c.MaxPages > 0 && page > c.MaxPages {
			result.Stop = StopPageLimit
			return result, nil
		}
		if err := ctx.Err(); err != nil {
			result.Stop = StopCanceled
			return result, err
		}
		if c.budgetReached() {
			result.Stop = StopBudget
			return result, nil
		}

		urls, err := c.Source.ListPage(ctx, page)
		if err != nil {
			return result, err
		}
		if len(urls) == 0 {
			result.Stop = StopExhausted
			return result, nil
		}

		result.Pages++
		c.emit(ProgressEvent{Type: ProgressPageStarted, Page: page})

		for _, u := range urls {
			// The budget is the hard ceiling: checked before every
			// document, even mid-page.
			if c.budgetReached() {
				result.Stop = StopBudget
				return result, nil
			}

			if c.Visited != nil {
				if c.Visited.Test(u) {
					continue
				}
				c.Visited.Add(u)
			}

			ar, err := c.Processor.Process(ctx, u)
			if err != nil {
				if filings.ErrorCode(err) == filings.EPERSIST {
					return result, err
				}
				if ctxErr := ctx.Err(); ctxErr != nil {
					result.Stop = StopCanceled
					return result, ctxErr
				}
				// A failed detail page costs only that announcement.
				result.Failed++
				c.emit(ProgressEvent{Type: ProgressFailed, Page: page, URL: u, Error: err})
				continue
			}

			result.Announcements++
			result.Retained += ar.Retained
			result.Skipped += ar.Skipped
			c.emit(ProgressEvent{
				Type:     ProgressProcessed,
				Page:     page,
				URL:      u,
				Retained: ar.Retained,
				Skipped:  ar.Skipped,
			})

			// The boundary is lenient: mark it and finish the page.
			if !c.Boundary.IsZero() && ar.DateKnown && !ar.Published.After(c.Boundary) {
				boundaryReached = true
			}
		}

		if boundaryReached {
			result.Stop = StopBoundary
			return result, nil
		}
	}
}

func (c *Crawler) budgetReached() bool {
	return c.StorageBudget > 0 && c.History.TotalBytes() >= c.StorageBudget
}

func (c *Crawler) emit(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
