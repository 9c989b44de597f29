package breadcrumbs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse extracts category and subcategory from a breadcrumb HTML
// fragment. The trail's "Home" item carries no taxonomy and is dropped.
// Malformed markup or fewer than two anchors yields (nil, nil).
func Parse(markup string) (category, subcategory *string) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, nil
	}

	var items []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			items = append(items, text)
		}
	})

	if len(items) < 2 {
		return nil, nil
	}

	trail := make([]string, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item, "home") {
			continue
		}
		trail = append(trail, item)
	}

	if len(trail) > 0 {
		category = &trail[0]
	}
	if len(trail) > 1 {
		subcategory = &trail[1]
	}
	return category, subcategory
}
