package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"storepress/internal/logger"
)

// Resolver lists a product's images from the remote content repository.
// Any failure degrades to an empty list; publishing never blocks on it.
type Resolver struct {
	apiBaseURL string
	httpClient *http.Client
	log        *logger.Logger
}

type repoEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

var imageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

func NewResolver(apiBaseURL string, log *logger.Logger) *Resolver {
	return &Resolver{
		apiBaseURL: apiBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		log:        log.With("component", "images"),
	}
}

// List returns relative image paths for the given product folder.
func (r *Resolver) List(ctx context.Context, folder string) []string {
	if folder == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", r.apiBaseURL, folder), nil)
	if err != nil {
		return nil
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Warn("image listing failed", "folder", folder, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("image listing failed", "folder", folder, "status", resp.Status)
		return nil
	}

	var entries []repoEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		// Non-list response (e.g. an error object)
		r.log.Warn("unexpected image listing payload", "folder", folder, "error", err)
		return nil
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == "file" && imageExt.MatchString(entry.Name) {
			paths = append(paths, fmt.Sprintf("/images/%s/%s", folder, entry.Name))
		}
	}
	return paths
}
