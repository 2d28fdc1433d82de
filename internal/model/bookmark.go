package model

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 form date_added is stored in.
// Fixed width and always UTC, so text order equals time order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID        int64
	Title     string
	URL       string
	Notes     string // "" = no notes
	DateAdded time.Time
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title     string
	URL       string
	Notes     string
	DateAdded time.Time // zero = stamp with the current time
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a stored date_added value.
// Falls back to RFC 3339 for values written by other tools.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Columns returns the bookmark as its ordered column values:
// id, title, url, notes, date_added.
func (b Bookmark) Columns() []string {
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.URL,
		b.Notes,
		FormatTime(b.DateAdded),
	}
}

// String joins the column values with tabs.
func (b Bookmark) String() string {
	return strings.Join(b.Columns(), "\t")
}
