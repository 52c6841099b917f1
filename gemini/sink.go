// Package gemini uploads retained filings to the Gemini Files API for
// document search.
package gemini

import (
	"context"

	"github.com/kmtan/filings"
	"google.golang.org/genai"
)

// Ensure Sink implements filings.IngestSink at compile time.
var _ filings.IngestSink = (*Sink)(nil)

// Sink implements filings.IngestSink using the Gemini Files API. The
// returned handle is the server-assigned file resource name.
type Sink struct {
	client *genai.Client
}

// NewSink creates a new Sink.
func NewSink(client *genai.Client) *Sink {
	return &Sink{client: client}
}

// Upload hands one retained file to the Files API. The announcement
// title is attached as the display name so uploads stay identifiable
// in the file listing.
func (s *Sink) Upload(ctx context.Context, path string, rec *filings.DownloadRecord) (string, error) {
	displayName := rec.Title
	if displayName == "" {
		displayName = rec.Filename
	}

	file, err := s.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return "", filings.Errorf(filings.EUNAVAILABLE, "upload %q: %v", rec.Filename, err)
	}

	return file.Name, nil
}
