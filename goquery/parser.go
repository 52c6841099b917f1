// Package goquery extracts announcement data from rendered listing and
// detail page HTML using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kmtan/filings"
)

// Config holds the CSS selectors describing the announcement site's
// page structure.
type Config struct {
	// ListingLinks selects the anchors on a listing page that point to
	// announcement detail pages.
	ListingLinks string

	// ListingFilter is a substring a listing href must contain to count
	// as an announcement link. Empty disables the filter.
	ListingFilter string

	// Title selects the announcement title on a detail page. Selectors
	// are tried in document order; the first non-empty text wins.
	Title string

	// Date selects the free-text publication date on a detail page.
	Date string

	// Attachments selects the downloadable attachment anchors on a
	// detail page.
	Attachments string

	// AttachmentBase resolves root-relative attachment hrefs, which on
	// some sites live on a different host than the detail pages.
	// Empty falls back to the detail page URL.
	AttachmentBase string
}

// DefaultConfig returns the selector set for the exchange announcement
// site this tool was built against.
func DefaultConfig() Config {
	return Config{
		ListingLinks:  "table.widget-filter-listing-content-table tbody tr td a.website-link",
		ListingFilter: "corporate-announcements",
		Title:         "h1, .announcement-title, .title",
		Date:          ".announcement-date, .date-time",
		Attachments:   "a.announcement-attachment",
	}
}

// Ensure Parser implements filings.PageParser at compile time.
var _ filings.PageParser = (*Parser)(nil)

// Parser implements filings.PageParser with goquery CSS selection.
type Parser struct {
	cfg Config
}

// NewParser creates a Parser for the given selector configuration.
func NewParser(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// Listing extracts announcement detail URLs from a listing page.
// URLs are deduplicated, keeping document order of first occurrence.
func (p *Parser) Listing(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, filings.Errorf(filings.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, filings.Errorf(filings.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var urls []string

	doc.Find(p.cfg.ListingLinks).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}
		if p.cfg.ListingFilter != "" && !strings.Contains(href, p.cfg.ListingFilter) {
			return
		}

		resolved := resolveHref(base, href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		urls = append(urls, resolved)
	})

	return urls, nil
}

// Detail extracts the title, date text and attachment links from a
// rendered detail page. Missing title or date come back empty; the
// caller owns the fallbacks.
func (p *Parser) Detail(html, baseURL string) (*filings.AnnouncementDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, filings.Errorf(filings.EINVALID, "failed to parse HTML: %v", err)
	}

	detail := &filings.AnnouncementDetail{
		URL:      baseURL,
		Title:    firstText(doc, p.cfg.Title),
		DateText: firstText(doc, p.cfg.Date),
		HTML:     html,
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, filings.Errorf(filings.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]struct{})
	doc.Find(p.cfg.Attachments).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := p.resolveAttachment(base, href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}

		detail.Attachments = append(detail.Attachments, filings.AttachmentLink{
			URL:   resolved,
			Label: strings.TrimSpace(sel.Text()),
		})
	})

	return detail, nil
}

// resolveAttachment resolves an attachment href. Root-relative hrefs go
// against AttachmentBase when configured, because attachment files can
// be served from a different host than the detail pages.
func (p *Parser) resolveAttachment(base *url.URL, href string) string {
	if p.cfg.AttachmentBase != "" && strings.HasPrefix(href, "/") {
		attBase, err := url.Parse(p.cfg.AttachmentBase)
		if err == nil {
			return resolveHref(attBase, href)
		}
	}
	return resolveHref(base, href)
}

// firstText returns the trimmed text of the first matching element that
// has any.
func firstText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	var text string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text = strings.TrimSpace(sel.Text())
		return text == ""
	})
	return text
}

// resolveHref resolves a relative href against a base URL, stripping
// fragments. Returns empty string on unparseable hrefs.
func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
