package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/kmtan/filings"
	"github.com/kmtan/filings/bloom"
	"github.com/kmtan/filings/crawl"
	"github.com/kmtan/filings/fs"
	"github.com/kmtan/filings/gemini"
	"github.com/kmtan/filings/goquery"
	"github.com/kmtan/filings/htmltomarkdown"
	filingshttp "github.com/kmtan/filings/http"
	"github.com/kmtan/filings/rod"
	"github.com/kmtan/filings/sha256"
	filingsslog "github.com/kmtan/filings/slog"
	"github.com/kmtan/filings/sqlite"
	"github.com/kmtan/filings/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the upload ledger, when the sync command
	// runs.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("filings"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'filings --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case "crawl":
		history, err := openHistory(cli.Crawl.historyPath(), stderr)
		if err != nil {
			return err
		}
		deps.History = history

		fetcher, err := rod.NewFetcher(rod.WithRenderDelay(cli.Crawl.RenderDelay))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		crawler, err := buildCrawler(&cli.Crawl, history, fetcher, stderr)
		if err != nil {
			return err
		}
		deps.Crawler = crawler

	case "status":
		history, err := openHistory(cli.Status.historyPath(), stderr)
		if err != nil {
			return err
		}
		deps.History = history

	case "sync":
		history, err := openHistory(cli.Sync.historyPath(), stderr)
		if err != nil {
			return err
		}
		deps.History = history
		deps.Blobs = fs.NewBlobStore(cli.Sync.Dir)

		m.DB = sqlite.NewDB(cli.Sync.ledgerPath())
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open upload ledger at %q: %w", cli.Sync.ledgerPath(), err)
		}
		defer m.Close()
		deps.Ledger = sqlite.NewLedgerService(m.DB)

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		deps.Sink = gemini.NewSink(client)
	}

	return kongCtx.Run(deps)
}

// openHistory loads the history file. A corrupt file is reported and
// replaced with an empty history rather than aborting the run.
func openHistory(path string, stderr io.Writer) (*fs.HistoryStore, error) {
	history, err := fs.OpenHistory(path)
	if err != nil {
		if filings.ErrorCode(err) == filings.ECORRUPT {
			fmt.Fprintf(stderr, "warning: %s; starting with an empty history\n", filings.ErrorMessage(err))
			return history, nil
		}
		return nil, err
	}
	return history, nil
}

// buildCrawler wires the full crawl pipeline from command-line flags.
func buildCrawler(c *CrawlCmd, history *fs.HistoryStore, fetcher filings.Fetcher, stderr io.Writer) (*crawl.Crawler, error) {
	var logger *slog.Logger
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	cfg := goquery.DefaultConfig()
	if c.AttachmentBase != "" {
		cfg.AttachmentBase = c.AttachmentBase
	}
	parser := goquery.NewParser(cfg)

	limiter := crawl.NewDomainLimiter(c.Rate)
	var source filings.Source = rod.NewSource(fetcher, parser, c.URL, rod.WithLimiter(limiter))
	if logger != nil {
		source = filingsslog.NewLoggingSource(source, logger)
	}
	if c.Feed != "" {
		source = filingshttp.NewFeedSource(c.Feed, source)
	}

	var transfer filings.Transfer = filingshttp.NewTransfer(filingshttp.WithTimeout(c.Timeout))
	if logger != nil {
		transfer = filingsslog.NewLoggingTransfer(transfer, logger)
	}

	downloader := &crawl.Downloader{
		Transfer: transfer,
		Hasher:   sha256.NewHasher(),
		History:  history,
		Blobs:    fs.NewBlobStore(c.Dir),
		Dedup:    crawl.NewDeduper(history, crawl.NewWindow(c.Window)),
	}

	processor := &crawl.Processor{
		Source:     source,
		Downloader: downloader,
		Logger:     logger,
	}
	if c.Snapshots != "" {
		processor.Extractor = trafilatura.NewExtractor()
		processor.Converter = htmltomarkdown.NewConverter()
		processor.Snapshots = fs.NewSnapshotStore(c.Snapshots)
	}

	var boundary time.Time
	if c.Boundary != "" {
		var err error
		boundary, err = time.Parse("2006-01-02", c.Boundary)
		if err != nil {
			return nil, fmt.Errorf("invalid boundary date %q: %w", c.Boundary, err)
		}
	}

	return &crawl.Crawler{
		Source:        source,
		Processor:     processor,
		History:       history,
		StorageBudget: c.BudgetMB * 1024 * 1024,
		Boundary:      boundary,
		Visited:       bloom.New(100000, 0.001),
		MaxPages:      c.MaxPages,
	}, nil
}
