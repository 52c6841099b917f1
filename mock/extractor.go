package mock

import "github.com/kmtan/filings"

var _ filings.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of filings.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*filings.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*filings.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ filings.Converter = (*Converter)(nil)

// Converter is a mock implementation of filings.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
