package main

import (
	"fmt"

	"github.com/kmtan/filings/crawl"
)

// statusTailLen is how many recent downloads the status command shows.
const statusTailLen = 5

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	history := deps.History

	if history.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No downloads recorded. Use 'filings crawl' to start.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Downloads:    %d\n", history.Len())
	fmt.Fprintf(deps.Stdout, "Total size:   %s\n", crawl.FormatBytes(history.TotalBytes()))
	fmt.Fprintf(deps.Stdout, "Last updated: %s\n", history.LastUpdated().Format("2006-01-02 15:04:05"))

	records := history.Records()
	tail := records
	if len(tail) > statusTailLen {
		tail = tail[len(tail)-statusTailLen:]
	}

	fmt.Fprintln(deps.Stdout, "\nRecent downloads:")
	for _, rec := range tail {
		fmt.Fprintf(deps.Stdout, "  %s  %s  %s\n",
			rec.PublishedDate, crawl.FormatBytes(rec.SizeBytes), rec.Filename)
	}

	return nil
}
