package mock

import (
	"context"

	"github.com/kmtan/filings"
)

var _ filings.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of filings.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

var _ filings.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of filings.PageParser.
type PageParser struct {
	ListingFn func(html, baseURL string) ([]string, error)
	DetailFn  func(html, baseURL string) (*filings.AnnouncementDetail, error)
}

func (p *PageParser) Listing(html, baseURL string) ([]string, error) {
	return p.ListingFn(html, baseURL)
}

func (p *PageParser) Detail(html, baseURL string) (*filings.AnnouncementDetail, error) {
	return p.DetailFn(html, baseURL)
}
