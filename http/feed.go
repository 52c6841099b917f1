package http

import (
	"context"
	"io"
	"net/http"

	"github.com/beevik/etree"
	"github.com/kmtan/filings"
)

// Ensure FeedSource implements filings.Source at compile time.
var _ filings.Source = (*FeedSource)(nil)

// FeedSource lists announcements from an RSS or Atom feed instead of a
// rendered listing page. Feeds carry only the latest announcements and
// are not paginated, so every page after the first is empty and the
// crawl terminates as exhausted.
//
// Detail rendering is delegated to another source, because feed entries
// link to the same detail pages the listing does.
type FeedSource struct {
	feedURL string
	client  *http.Client
	detail  filings.Source
}

// NewFeedSource creates a FeedSource reading feedURL and delegating
// detail rendering to detail.
func NewFeedSource(feedURL string, detail filings.Source) *FeedSource {
	return &FeedSource{
		feedURL: feedURL,
		client:  http.DefaultClient,
		detail:  detail,
	}
}

// ListPage returns the announcement URLs in the feed for page 1 and an
// empty slice for every later page.
func (s *FeedSource) ListPage(ctx context.Context, page int) ([]string, error) {
	if page > 1 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, filings.Errorf(filings.EINVALID, "invalid feed URL %q: %v", s.feedURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, filings.Errorf(filings.EUNAVAILABLE, "GET %s: %v", s.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, filings.Errorf(filings.EUNAVAILABLE, "GET %s: unexpected status %d", s.feedURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, filings.Errorf(filings.EUNAVAILABLE, "read feed %s: %v", s.feedURL, err)
	}

	return ParseFeed(body)
}

// RenderDetail delegates to the wrapped detail source.
func (s *FeedSource) RenderDetail(ctx context.Context, url string) (*filings.AnnouncementDetail, error) {
	return s.detail.RenderDetail(ctx, url)
}

// ParseFeed extracts entry links from RSS 2.0 (<item><link>text) and
// Atom (<entry><link href>) documents.
func ParseFeed(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, filings.Errorf(filings.EINVALID, "cannot parse feed: %v", err)
	}

	var urls []string
	seen := make(map[string]struct{})
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, item := range doc.FindElements("//item") {
		if link := item.SelectElement("link"); link != nil {
			add(link.Text())
		}
	}
	for _, entry := range doc.FindElements("//entry") {
		if link := entry.SelectElement("link"); link != nil {
			add(link.SelectAttrValue("href", ""))
		}
	}

	return urls, nil
}
