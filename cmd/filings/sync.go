package main

import (
	"fmt"
	"sync/atomic"

	"github.com/kmtan/filings"
	"golang.org/x/sync/errgroup"
)

// Run executes the sync command: every retained file that is not yet in
// the upload ledger is handed to the ingestion sink, with a bounded
// number of concurrent uploads.
func (c *SyncCmd) Run(deps *Dependencies) error {
	records := deps.History.Records()
	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads recorded. Use 'filings crawl' to start.")
		return nil
	}

	// Decide what is pending up front; ledger lookups are cheap and
	// keeping them out of the upload goroutines keeps SQLite happy.
	var pending []*filings.DownloadRecord
	for _, rec := range records {
		_, err := deps.Ledger.FindUploadByFilename(deps.Ctx, rec.Filename)
		if err == nil {
			continue
		}
		if filings.ErrorCode(err) != filings.ENOTFOUND {
			return err
		}
		pending = append(pending, rec)
	}

	if len(pending) == 0 {
		fmt.Fprintf(deps.Stdout, "All %d files already uploaded.\n", len(records))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Uploading %d of %d files\n", len(pending), len(records))

	var uploaded, failed atomic.Int64

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for _, rec := range pending {
		g.Go(func() error {
			handle, err := deps.Sink.Upload(ctx, deps.Blobs.Path(rec.Filename), rec)
			if err != nil {
				failed.Add(1)
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", rec.Filename, err)
				return nil
			}

			if err := deps.Ledger.CreateUpload(ctx, &filings.Upload{
				Filename: rec.Filename,
				Handle:   handle,
				Title:    rec.Title,
			}); err != nil {
				return err
			}

			uploaded.Add(1)
			fmt.Fprintf(deps.Stdout, "  %s\n", rec.Filename)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d uploaded, %d failed\n", uploaded.Load(), failed.Load())
	return nil
}
