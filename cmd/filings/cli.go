package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/kmtan/filings"
	"github.com/kmtan/filings/crawl"
	"github.com/kmtan/filings/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	History *fs.HistoryStore
	Crawler *crawl.Crawler
	Blobs   filings.BlobStore
	Ledger  filings.UploadLedger
	Sink    filings.IngestSink
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl the announcement listing and download new attachments"`
	Status StatusCmd `cmd:"" help:"Show download history statistics"`
	Sync   SyncCmd   `cmd:"" help:"Upload retained files to the document search service"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL            string        `arg:"" help:"Announcement listing URL"`
	Dir            string        `default:"downloads" help:"Download directory"`
	History        string        `help:"History file path (default: <dir>/download_history.json)"`
	BudgetMB       int64         `name:"budget-mb" default:"1024" help:"Storage budget in megabytes (0 = unlimited)"`
	Boundary       string        `default:"2021-12-31" help:"Stop once an announcement at or before this date is seen (YYYY-MM-DD, empty disables)"`
	Window         int           `default:"50" help:"Recent-content dedup window size"`
	Timeout        time.Duration `default:"30s" help:"Per-download timeout"`
	RenderDelay    time.Duration `name:"render-delay" default:"2s" help:"Wait after page load before reading the HTML"`
	Rate           float64       `default:"1" help:"Max requests per second per domain"`
	Feed           string        `help:"List announcements from this RSS/Atom feed instead of the listing page"`
	Snapshots      string        `help:"Save markdown page snapshots to this directory"`
	MaxPages       int           `name:"max-pages" help:"Stop after this many listing pages (0 = no cap)"`
	AttachmentBase string        `name:"attachment-base" help:"Base URL for root-relative attachment links"`
	Verbose        bool          `short:"v" help:"Verbose logging"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Dir     string `default:"downloads" help:"Download directory"`
	History string `help:"History file path (default: <dir>/download_history.json)"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Dir         string `default:"downloads" help:"Download directory"`
	History     string `help:"History file path (default: <dir>/download_history.json)"`
	Ledger      string `help:"Upload ledger database path (default: <dir>/uploads.db)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent upload limit"`
}

// historyFileName is the default history file name inside the download
// directory.
const historyFileName = "download_history.json"

func (c *CrawlCmd) historyPath() string {
	if c.History != "" {
		return c.History
	}
	return filepath.Join(c.Dir, historyFileName)
}

func (c *StatusCmd) historyPath() string {
	if c.History != "" {
		return c.History
	}
	return filepath.Join(c.Dir, historyFileName)
}

func (c *SyncCmd) historyPath() string {
	if c.History != "" {
		return c.History
	}
	return filepath.Join(c.Dir, historyFileName)
}

func (c *SyncCmd) ledgerPath() string {
	if c.Ledger != "" {
		return c.Ledger
	}
	return filepath.Join(c.Dir, "uploads.db")
}
