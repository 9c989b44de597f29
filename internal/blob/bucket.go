package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"storepress/internal/config"
	"storepress/internal/logger"
)

// Store writes uploaded images to a GCS bucket and hands back the URL
// they are served from.
type Store struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
	log       *logger.Logger
}

func NewStore(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...option.ClientOption) (*Store, error) {
	if cfg.ImageBucket == "" {
		return nil, fmt.Errorf("image bucket not configured")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Store{
		client:    client,
		bucket:    cfg.ImageBucket,
		cdnDomain: cfg.ImageCDNDomain,
		log:       log.With("component", "blob"),
	}, nil
}

// Upload streams one object into the bucket and returns its public URL.
func (s *Store) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	s.log.Info("stored image", "key", key)
	return s.PublicURL(key), nil
}

// PublicURL builds the serving URL, preferring the CDN domain when set.
func (s *Store) PublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

func (s *Store) Close() error {
	return s.client.Close()
}
