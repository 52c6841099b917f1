package filings

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// unsafeChars matches characters that are illegal in file paths on at
// least one supported platform.
var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters illegal in a file path with an
// underscore. The result is safe to join onto a directory path.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// AttachmentFilename builds the stored name for an attachment: the
// announcement's normalized date (YYYY-MM-DD) prefixed onto the
// sanitized display label, for lexical sortability. When the label is
// empty the last path segment of the attachment URL is used instead.
func AttachmentFilename(date, label, rawURL string) string {
	name := strings.TrimSpace(label)
	if name == "" {
		if u, err := url.Parse(rawURL); err == nil {
			name = path.Base(u.Path)
		}
	}
	if name == "" || name == "." || name == "/" {
		name = "attachment"
	}
	return date + "_" + SanitizeFilename(name)
}
