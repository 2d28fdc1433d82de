package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Entry is one link found in a bookmark file.
type Entry struct {
	Title   string
	URL     string
	Notes   string    // from the <DD> following the link
	AddedAt time.Time // zero when the file has no ADD_DATE
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns its links
// in document order. Folder headings are flattened away.
func ParseHTMLBookmarks(r io.Reader) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	// Index of the entry a following <DD> describes, -1 = none
	describes := -1

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder heading; a <DD> after it describes the folder
				describes = -1
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					describes = -1
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				entry := Entry{
					Title: title,
					URL:   href,
				}
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						entry.AddedAt = time.Unix(ts, 0).UTC()
					}
				}

				entries = append(entries, entry)
				describes = len(entries) - 1
				return // Don't recurse into A

			case "dd":
				if describes >= 0 {
					entries[describes].Notes = getTextContent(n)
					describes = -1
				}
				// DD may wrap the next DT when the file omits closing tags
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// getTextContent returns the direct and nested text of a node, stopping
// at nested list items so a DD never swallows the links after it.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch strings.ToLower(c.Data) {
				case "dt", "dl":
					continue
				}
			}
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
