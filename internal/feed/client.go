package feed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"storepress/internal/logger"
)

// Client fetches the external CSV feed and samples records from it.
type Client struct {
	feedURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(feedURL string, log *logger.Logger) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		log:        log.With("component", "feed"),
	}
}

// Lines downloads the feed and returns its non-blank lines.
func (c *Client) Lines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	raw := strings.Split(string(body), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Random picks one feed line uniformly at random and parses it. An
// unparseable pick returns (nil, nil) so the caller can draw again.
func (c *Client) Random(ctx context.Context) (*Record, error) {
	lines, err := c.Lines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	line := lines[rand.Intn(len(lines))]
	rec := ParseLine(line)
	if rec == nil {
		c.log.Debug("skipping malformed feed line", "line", line)
	}
	return rec, nil
}
