package mock

import (
	"context"

	"github.com/kmtan/filings"
)

var _ filings.Source = (*Source)(nil)

// Source is a mock implementation of filings.Source.
type Source struct {
	ListPageFn     func(ctx context.Context, page int) ([]string, error)
	RenderDetailFn func(ctx context.Context, url string) (*filings.AnnouncementDetail, error)
}

func (s *Source) ListPage(ctx context.Context, page int) ([]string, error) {
	return s.ListPageFn(ctx, page)
}

func (s *Source) RenderDetail(ctx context.Context, url string) (*filings.AnnouncementDetail, error) {
	return s.RenderDetailFn(ctx, url)
}
