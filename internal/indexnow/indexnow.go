package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storepress/internal/logger"
)

// Client pushes newly published URLs to the IndexNow endpoint so search
// engines pick pages up without waiting for a crawl.
type Client struct {
	endpoint    string
	key         string
	siteBaseURL string
	host        string
	httpClient  *http.Client
	log         *logger.Logger
}

type payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

func New(endpoint, key, siteBaseURL string, log *logger.Logger) *Client {
	host := siteBaseURL
	if u, err := url.Parse(siteBaseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return &Client{
		endpoint:    endpoint,
		key:         key,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		host:        host,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         log.With("component", "indexnow"),
	}
}

// NotifyURLs submits the given absolute URLs. Errors are returned so the
// caller can log them, but notification is always best-effort.
func (c *Client) NotifyURLs(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	if c.key == "" {
		return fmt.Errorf("indexnow key not configured")
	}

	body, err := json.Marshal(payload{
		Host:        c.host,
		Key:         c.key,
		KeyLocation: fmt.Sprintf("%s/%s.txt", c.siteBaseURL, c.key),
		URLList:     urls,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit urls: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("indexnow rejected submission: %s", resp.Status)
	}

	c.log.Info("notified indexnow", "urls", len(urls))
	return nil
}

// NotifyProduct submits the canonical page URL for one product slug.
func (c *Client) NotifyProduct(ctx context.Context, slug string) error {
	return c.NotifyURLs(ctx, []string{c.ProductURL(slug)})
}

// ProductURL builds the canonical product page URL for a slug.
func (c *Client) ProductURL(slug string) string {
	return fmt.Sprintf("%s/product/%s", c.siteBaseURL, slug)
}
