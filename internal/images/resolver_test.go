package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storepress/internal/logger"
)

func TestListFiltersImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tree-210" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"name":"1.jpg","type":"file"},
			{"name":"2.WEBP","type":"file"},
			{"name":"notes.txt","type":"file"},
			{"name":"sub","type":"dir"}
		]`)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, logger.New("test", "error"))
	paths := resolver.List(context.Background(), "tree-210")

	if len(paths) != 2 {
		t.Fatalf("expected 2 image paths, got %v", paths)
	}
	if paths[0] != "/images/tree-210/1.jpg" || paths[1] != "/images/tree-210/2.WEBP" {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestListNonListResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, logger.New("test", "error"))
	if paths := resolver.List(context.Background(), "missing"); len(paths) != 0 {
		t.Fatalf("expected empty list, got %v", paths)
	}
}

func TestListErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, logger.New("test", "error"))
	if paths := resolver.List(context.Background(), "gone"); len(paths) != 0 {
		t.Fatalf("expected empty list, got %v", paths)
	}
}

func TestListEmptyFolder(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("http://127.0.0.1:0", logger.New("test", "error"))
	if paths := resolver.List(context.Background(), ""); paths != nil {
		t.Fatalf("expected nil for empty folder, got %v", paths)
	}
}
