package filings

import "context"

// AttachmentLink is one downloadable file linked from a detail page.
type AttachmentLink struct {
	URL   string
	Label string
}

// AnnouncementDetail is a rendered announcement detail page.
type AnnouncementDetail struct {
	URL         string
	Title       string
	DateText    string // free-text date as it appears on the page
	Attachments []AttachmentLink
	HTML        string // full rendered HTML, for snapshotting
}

// Source provides access to the announcement site.
// Implementations hide browser automation and page structure.
type Source interface {
	// ListPage returns the announcement URLs on listing page n
	// (1-based). An empty slice signals that the source is exhausted.
	ListPage(ctx context.Context, page int) ([]string, error)

	// RenderDetail renders one announcement detail page.
	RenderDetail(ctx context.Context, url string) (*AnnouncementDetail, error)
}

// PageParser extracts structured data from rendered listing and detail
// page HTML. The baseURL is used to resolve relative URLs.
type PageParser interface {
	Listing(html, baseURL string) ([]string, error)
	Detail(html, baseURL string) (*AnnouncementDetail, error)
}
