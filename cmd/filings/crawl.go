package main

import (
	"fmt"

	"github.com/kmtan/filings/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Crawling %s\n", c.URL)

	deps.Crawler.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPageStarted:
			fmt.Fprintf(deps.Stdout, "  page %d\n", event.Page)
		case crawl.ProgressProcessed:
			fmt.Fprintf(deps.Stdout, "    %s: %d retained, %d skipped\n",
				crawl.TruncateURL(event.URL, 60), event.Retained, event.Skipped)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "    skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx)
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Done: %d pages, %d announcements, %d retained, %d skipped, %d failed (%s total)\n",
			result.Pages, result.Announcements, result.Retained, result.Skipped, result.Failed,
			crawl.FormatBytes(result.TotalBytes))
		if result.Stop != "" {
			fmt.Fprintf(deps.Stdout, "Stopped: %s\n", result.Stop)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	return nil
}
