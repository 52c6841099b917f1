package crawl

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// announcementDateLayout is the layout dates take on announcement
// pages once trailing time text is stripped, e.g. "15 Oct 2025".
const announcementDateLayout = "2 Jan 2006"

// ParseAnnouncementDate parses a free-text publication date from a
// detail page. Returns the parsed date and true on success, or the
// fallback and false when the text is empty or unparseable. The
// fallback-to-today behavior is a documented lossy contract: an
// unparseable date must never abort the announcement, and the record
// is tagged with the run's current date instead.
func ParseAnnouncementDate(text string, fallback time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback, false
	}

	if t, err := dateparse.ParseAny(text); err == nil {
		return t, true
	}

	// Dates often carry trailing time text ("15 Oct 2025 08:30 PM");
	// retry with just the leading day-month-year fields.
	fields := strings.Fields(text)
	if len(fields) >= 3 {
		if t, err := time.Parse(announcementDateLayout, strings.Join(fields[:3], " ")); err == nil {
			return t, true
		}
	}

	return fallback, false
}
