package indexnow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storepress/internal/logger"
)

func TestNotifyProduct(t *testing.T) {
	t.Parallel()

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := New(srv.URL, "abc123", "https://shop.example.com", logger.New("test", "error"))

	if err := client.NotifyProduct(context.Background(), "christmas-tree"); err != nil {
		t.Fatalf("NotifyProduct returned error: %v", err)
	}

	if got.Host != "shop.example.com" {
		t.Fatalf("unexpected host: %q", got.Host)
	}
	if got.Key != "abc123" {
		t.Fatalf("unexpected key: %q", got.Key)
	}
	if got.KeyLocation != "https://shop.example.com/abc123.txt" {
		t.Fatalf("unexpected key location: %q", got.KeyLocation)
	}
	if len(got.URLList) != 1 || got.URLList[0] != "https://shop.example.com/product/christmas-tree" {
		t.Fatalf("unexpected url list: %v", got.URLList)
	}
}

func TestNotifyRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(srv.URL, "abc123", "https://shop.example.com", logger.New("test", "error"))
	if err := client.NotifyURLs(context.Background(), []string{"https://shop.example.com/x"}); err == nil {
		t.Fatal("expected error for rejected submission")
	}
}

func TestNotifyWithoutKey(t *testing.T) {
	t.Parallel()

	client := New("http://127.0.0.1:0", "", "https://shop.example.com", logger.New("test", "error"))
	if err := client.NotifyURLs(context.Background(), []string{"https://shop.example.com/x"}); err == nil {
		t.Fatal("expected error when key is missing")
	}
}

func TestNotifyNothing(t *testing.T) {
	t.Parallel()

	client := New("http://127.0.0.1:0", "abc", "https://shop.example.com", logger.New("test", "error"))
	if err := client.NotifyURLs(context.Background(), nil); err != nil {
		t.Fatalf("empty url list should be a no-op, got %v", err)
	}
}
