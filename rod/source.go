package rod

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kmtan/filings"
)

// Ensure Source implements filings.Source at compile time.
var _ filings.Source = (*Source)(nil)

// PageURLFunc builds the URL of listing page n (1-based) from the base
// listing URL.
type PageURLFunc func(listingURL string, page int) string

// Source implements filings.Source over a rendered announcement site:
// a Fetcher renders the pages and a PageParser pulls out the links,
// title, date and attachments.
type Source struct {
	fetcher    filings.Fetcher
	parser     filings.PageParser
	listingURL string
	pageURL    PageURLFunc
	limiter    filings.DomainLimiter
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithPageURL overrides how listing page URLs are built. The default
// appends a "page" query parameter for pages after the first.
func WithPageURL(fn PageURLFunc) SourceOption {
	return func(s *Source) {
		s.pageURL = fn
	}
}

// WithLimiter rate-limits navigations per domain.
func WithLimiter(l filings.DomainLimiter) SourceOption {
	return func(s *Source) {
		s.limiter = l
	}
}

// NewSource creates a Source over the given listing URL.
func NewSource(fetcher filings.Fetcher, parser filings.PageParser, listingURL string, opts ...SourceOption) *Source {
	s := &Source{
		fetcher:    fetcher,
		parser:     parser,
		listingURL: listingURL,
		pageURL:    defaultPageURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPage renders listing page n and returns the announcement URLs on it.
func (s *Source) ListPage(ctx context.Context, page int) ([]string, error) {
	pageURL := s.pageURL(s.listingURL, page)

	if err := s.wait(ctx, pageURL); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return s.parser.Listing(html, pageURL)
}

// RenderDetail renders one announcement detail page.
func (s *Source) RenderDetail(ctx context.Context, url string) (*filings.AnnouncementDetail, error) {
	if err := s.wait(ctx, url); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return s.parser.Detail(html, url)
}

// wait blocks on the per-domain rate limiter, when one is configured.
func (s *Source) wait(ctx context.Context, rawURL string) error {
	if s.limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return filings.Errorf(filings.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return s.limiter.Wait(ctx, u.Host)
}

// defaultPageURL appends a "page" query parameter for pages after the
// first.
func defaultPageURL(listingURL string, page int) string {
	if page <= 1 {
		return listingURL
	}
	u, err := url.Parse(listingURL)
	if err != nil {
		return fmt.Sprintf("%s?page=%d", listingURL, page)
	}
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	return u.String()
}
