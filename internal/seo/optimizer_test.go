package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storepress/internal/config"
	"storepress/internal/logger"
)

func newTestOptimizer(url string) *Optimizer {
	cfg := &config.Config{
		SEOAPIURL: url,
		SEOAPIKey: "test-key",
		SEOModel:  "test-model",
	}
	return New(cfg, logger.New("test", "error"))
}

func completionReply(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestOptimizeRewrites(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		fmt.Fprint(w, completionReply(`Here you go: {"title":"Better Title","description":"Better description."}`))
	}))
	defer srv.Close()

	title, description := newTestOptimizer(srv.URL).Optimize(context.Background(), "Old", "Old desc")
	if title != "Better Title" {
		t.Fatalf("unexpected title: %q", title)
	}
	if description != "Better description." {
		t.Fatalf("unexpected description: %q", description)
	}
}

func TestOptimizeNonJSONReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply("I cannot help with that."))
	}))
	defer srv.Close()

	title, description := newTestOptimizer(srv.URL).Optimize(context.Background(), "Original", "Original desc")
	if title != "Original" || description != "Original desc" {
		t.Fatalf("expected originals back, got %q / %q", title, description)
	}
}

func TestOptimizeServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	title, description := newTestOptimizer(srv.URL).Optimize(context.Background(), "Original", "Original desc")
	if title != "Original" || description != "Original desc" {
		t.Fatalf("expected originals back, got %q / %q", title, description)
	}
}

func TestOptimizePartialReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply(`{"title":"Only Title"}`))
	}))
	defer srv.Close()

	title, description := newTestOptimizer(srv.URL).Optimize(context.Background(), "Original", "Original desc")
	if title != "Only Title" {
		t.Fatalf("unexpected title: %q", title)
	}
	if description != "Original desc" {
		t.Fatalf("missing field should fall back, got %q", description)
	}
}

func TestOptimizeWithoutKey(t *testing.T) {
	t.Parallel()

	opt := New(&config.Config{SEOAPIURL: "http://127.0.0.1:0"}, logger.New("test", "error"))

	title, description := opt.Optimize(context.Background(), "Original", "Original desc")
	if title != "Original" || description != "Original desc" {
		t.Fatalf("expected originals back, got %q / %q", title, description)
	}
}
