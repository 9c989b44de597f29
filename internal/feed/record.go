package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnknownProductID marks a feed line whose numeric id column did not
// parse. Downstream code stores it as-is.
const UnknownProductID int64 = -1

const minFields = 8

// Record is one parsed feed line, discarded after publishing.
type Record struct {
	SearchKey   string
	URL         string
	Title       string
	Breadcrumbs string
	ProductID   int64
	Description string
	Tags        string
	ImageURLs   []string
}

// ParseLine decodes one semicolon-delimited feed line. Lines with fewer
// than 8 fields are skipped (nil). The format has no delimiter escaping;
// a `;` inside a field corrupts the line and that is accepted.
func ParseLine(line string) *Record {
	parts := strings.Split(line, ";")
	if len(parts) < minFields {
		return nil
	}

	productID := UnknownProductID
	if id, err := strconv.ParseInt(strings.TrimSpace(parts[4]), 10, 64); err == nil {
		productID = id
	}

	return &Record{
		SearchKey:   parts[0],
		URL:         parts[1],
		Title:       parts[2],
		Breadcrumbs: parts[3],
		ProductID:   productID,
		Description: parts[5],
		Tags:        cleanList(parts[6]),
		ImageURLs:   splitList(parts[7]),
	}
}

// Validate rejects records that would violate the row's required
// columns before anything is written.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("record has no url")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("record has no title")
	}
	return nil
}

var productPathPattern = regexp.MustCompile(`/product/([^/]+)/`)

// FolderName derives the image folder key from a product URL:
// /product/christmas-tree-210/ -> christmas-tree-210.
func FolderName(url string) string {
	if m := productPathPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	segments := strings.Split(strings.Trim(url, "/"), "/")
	return segments[len(segments)-1]
}

func cleanList(s string) string {
	return strings.Join(splitList(s), ",")
}

func splitList(s string) []string {
	items := make([]string, 0, 4)
	for _, part := range strings.Split(s, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
