package crawl

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/kmtan/filings"
)

// AttachmentMeta carries the announcement-level fields a retained
// attachment inherits into its DownloadRecord.
type AttachmentMeta struct {
	AnnouncementURL string
	Title           string
	Date            string // normalized YYYY-MM-DD
}

// Outcome is the result of offering one attachment to the Downloader.
type Outcome struct {
	Retained bool
	Reason   string                  // populated on skips
	Err      error                   // underlying fault, for logging
	Record   *filings.DownloadRecord // populated on retention
}

// Downloader fetches one attachment, decides whether to keep it, and
// makes the keep durable. All side effects are reversed on any skip:
// a duplicate or failed attachment never leaves a file behind.
//
// Returned errors escalate; everything recoverable (duplicates,
// network faults, write faults) is reported as a skip Outcome so the
// announcement's other attachments can still be attempted. The only
// escalating fault is a failed history append, because continuing
// with stale accounting would silently break the storage budget and
// the dedup keys.
type Downloader struct {
	Transfer filings.Transfer
	Hasher   filings.Hasher
	History  filings.HistoryService
	Blobs    filings.BlobStore
	Dedup    *Deduper

	// Now is the clock used for RetrievedAt; defaults to time.Now.
	Now func() time.Time
}

// FetchAndMaybeRetain runs the full per-attachment pipeline: resolve
// the URL, build the date-prefixed sanitized filename, run the key
// dedup tiers before any transfer, stream the body to disk while
// hashing it, run the content tier, and either persist the record or
// roll the file back.
func (d *Downloader) FetchAndMaybeRetain(ctx context.Context, att filings.AttachmentLink, meta AttachmentMeta, batch *Batch) (*Outcome, error) {
	srcURL, err := resolveAttachmentURL(att.URL, meta.AnnouncementURL)
	if err != nil {
		return &Outcome{Reason: "unresolvable attachment URL", Err: err}, nil
	}

	filename := filings.AttachmentFilename(meta.Date, att.Label, srcURL)

	// Tiers 1-3 are key comparisons; a match here skips the attachment
	// with no network transfer at all.
	if v := d.Dedup.CheckKeys(srcURL, filename, batch); v.Duplicate {
		return &Outcome{Reason: string(v.Reason)}, nil
	}

	body, err := d.Transfer.Get(ctx, srcURL)
	if err != nil {
		return &Outcome{Reason: fmt.Sprintf("transfer failed: %v", err), Err: err}, nil
	}
	defer body.Close()

	digest := d.Hasher.New()
	size, err := d.Blobs.Write(filename, io.TeeReader(body, digest))
	if err != nil {
		// BlobStore.Write cleans up its own partial file.
		return &Outcome{Reason: fmt.Sprintf("write failed: %v", err), Err: err}, nil
	}

	// Tier 4 needs the bytes, so it runs only now.
	if v := d.Dedup.CheckContent(digest.Sum()); v.Duplicate {
		if rmErr := d.Blobs.Remove(filename); rmErr != nil {
			return &Outcome{Reason: string(v.Reason), Err: rmErr}, nil
		}
		return &Outcome{
			Reason: fmt.Sprintf("%s (%s)", v.Reason, v.MatchedName),
		}, nil
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	rec := &filings.DownloadRecord{
		SourceURL:       srcURL,
		Filename:        filename,
		AnnouncementURL: meta.AnnouncementURL,
		Title:           meta.Title,
		RetrievedAt:     now().UTC(),
		SizeBytes:       size,
		PublishedDate:   meta.Date,
	}

	if err := d.History.Append(ctx, rec); err != nil {
		// A failed append means the retention never happened: remove
		// the file and stop the run.
		_ = d.Blobs.Remove(filename)
		return nil, err
	}

	d.Dedup.Commit(digest.Sum(), filename)
	if batch != nil {
		batch.Mark(filename)
	}

	return &Outcome{Retained: true, Record: rec}, nil
}

// resolveAttachmentURL makes an attachment href absolute, resolving
// relative hrefs against the announcement page URL.
func resolveAttachmentURL(raw, base string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", filings.Errorf(filings.EINVALID, "invalid attachment URL %q: %v", raw, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", filings.Errorf(filings.EINVALID, "invalid announcement URL %q: %v", base, err)
	}
	return b.ResolveReference(u).String(), nil
}
