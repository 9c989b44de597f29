package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"storepress/internal/models"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Build renders the sitemap for the whole site: static pages, one entry
// per published product and one per distinct category/subcategory.
// Products without a slug have no page yet and are skipped.
func Build(baseURL string, products []models.Product, categories, subcategories []string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	urls := []URL{
		{Loc: base + "/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: base + "/about", ChangeFreq: "monthly", Priority: "0.5"},
		{Loc: base + "/privacy", ChangeFreq: "monthly", Priority: "0.3"},
	}

	for _, product := range products {
		if product.SlugValue() == "" {
			continue
		}
		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/product/%s", base, product.SlugValue()),
			LastMod:    product.PublishedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, category := range categories {
		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/category/%s", base, pageSlug(category)),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	for _, subcategory := range subcategories {
		urls = append(urls, URL{
			Loc:        fmt.Sprintf("%s/category/all/%s", base, pageSlug(subcategory)),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(URLSet{Xmlns: xmlns, URLs: urls}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func pageSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
