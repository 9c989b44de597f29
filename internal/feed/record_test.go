package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storepress/internal/logger"
)

const sampleLine = "k1;/product/tree-210/;Christmas Tree;<ul><li><a>Home</a></li><li><a>Trees</a></li></ul>;210;<p>desc</p>;a, b;1.jpg,2.jpg"

func TestParseLine(t *testing.T) {
	t.Parallel()

	rec := ParseLine(sampleLine)
	if rec == nil {
		t.Fatal("expected record, got nil")
	}

	if rec.SearchKey != "k1" {
		t.Fatalf("unexpected search key: %q", rec.SearchKey)
	}
	if rec.URL != "/product/tree-210/" {
		t.Fatalf("unexpected url: %q", rec.URL)
	}
	if rec.Title != "Christmas Tree" {
		t.Fatalf("unexpected title: %q", rec.Title)
	}
	if rec.ProductID != 210 {
		t.Fatalf("unexpected product id: %d", rec.ProductID)
	}
	if rec.Description != "<p>desc</p>" {
		t.Fatalf("description lost its markup: %q", rec.Description)
	}
	if rec.Tags != "a,b" {
		t.Fatalf("unexpected tags: %q", rec.Tags)
	}
	if len(rec.ImageURLs) != 2 || rec.ImageURLs[0] != "1.jpg" || rec.ImageURLs[1] != "2.jpg" {
		t.Fatalf("unexpected image urls: %v", rec.ImageURLs)
	}
}

func TestParseLineTooFewFields(t *testing.T) {
	t.Parallel()

	if rec := ParseLine("a;b;c;d;e;f;g"); rec != nil {
		t.Fatalf("expected nil for 7 fields, got %+v", rec)
	}
	if rec := ParseLine(""); rec != nil {
		t.Fatalf("expected nil for empty line, got %+v", rec)
	}
}

func TestParseLineEmptyImageField(t *testing.T) {
	t.Parallel()

	rec := ParseLine("k;/product/x/;T;<ul></ul>;1;d;t;")
	if rec == nil {
		t.Fatal("expected record for 8 fields with empty image list")
	}
	if len(rec.ImageURLs) != 0 {
		t.Fatalf("expected empty image list, got %v", rec.ImageURLs)
	}
}

func TestParseLineNonNumericProductID(t *testing.T) {
	t.Parallel()

	rec := ParseLine("k;/product/x/;T;<ul></ul>;abc;d;t;1.jpg")
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.ProductID != UnknownProductID {
		t.Fatalf("expected sentinel product id, got %d", rec.ProductID)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	rec := &Record{URL: "/product/x/", Title: "X"}
	if err := rec.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	if err := (&Record{Title: "X"}).Validate(); err == nil {
		t.Fatal("expected error for missing url")
	}
	if err := (&Record{URL: "/product/x/"}).Validate(); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestFolderName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/product/christmas-tree-210/": "christmas-tree-210",
		"/product/tree-210/":           "tree-210",
		"https://shop.example.com/product/font-5/": "font-5",
		"/catalog/other/item-9":                    "item-9",
	}
	for in, want := range cases {
		if got := FolderName(in); got != want {
			t.Fatalf("FolderName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientRandom(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s\n\n  \n", sampleLine)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.New("test", "error"))

	rec, err := client.Random(context.Background())
	if err != nil {
		t.Fatalf("Random returned error: %v", err)
	}
	if rec == nil || rec.URL != "/product/tree-210/" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestClientRandomEmptyFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "\n\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.New("test", "error"))

	rec, err := client.Random(context.Background())
	if err != nil {
		t.Fatalf("Random returned error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for empty feed, got %+v", rec)
	}
}

func TestClientFeedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.New("test", "error"))

	if _, err := client.Random(context.Background()); err == nil {
		t.Fatal("expected error for failing feed")
	}
}
