package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"storepress/internal/models"
)

func strptr(s string) *string { return &s }

func TestBuild(t *testing.T) {
	t.Parallel()

	published := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Title: "Tree", Slug: strptr("christmas-tree"), PublishedAt: published},
		{Title: "No page yet"}, // slugless, skipped
	}

	out, err := Build("https://shop.example.com/", products, []string{"Holiday Fonts"}, []string{"Serif"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var parsed URLSet
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}

	doc := string(out)
	if !strings.HasPrefix(doc, xml.Header) {
		t.Fatal("missing XML declaration")
	}
	if !strings.Contains(doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Fatal("missing urlset namespace")
	}
	if !strings.Contains(doc, "<loc>https://shop.example.com/product/christmas-tree</loc>") {
		t.Fatalf("missing product url:\n%s", doc)
	}
	if !strings.Contains(doc, "<lastmod>2026-03-14</lastmod>") {
		t.Fatal("missing lastmod")
	}
	if !strings.Contains(doc, "<loc>https://shop.example.com/category/holiday-fonts</loc>") {
		t.Fatal("missing category url")
	}
	if strings.Contains(doc, "No page yet") || strings.Contains(doc, "product/</loc>") {
		t.Fatal("slugless product leaked into sitemap")
	}

	// 3 static + 1 product + 1 category + 1 subcategory
	if len(parsed.URLs) != 6 {
		t.Fatalf("expected 6 urls, got %d", len(parsed.URLs))
	}
}
