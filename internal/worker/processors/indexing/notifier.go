package indexing

import (
	"context"

	"storepress/internal/config"
	"storepress/internal/events"
	"storepress/internal/indexnow"
	"storepress/internal/logger"
)

// Notifier pushes published products to the instant-indexing endpoint.
// Notification failures are logged and absorbed; the event is still
// considered processed.
type Notifier struct {
	client *indexnow.Client
	logger *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Notifier {
	return &Notifier{
		client: indexnow.New(cfg.IndexNowEndpoint, cfg.IndexNowKey, cfg.SiteBaseURL, log),
		logger: log.With("component", "indexing"),
	}
}

func (n *Notifier) ProductPublished(ctx context.Context, event events.Event) error {
	if event.Slug == "" {
		n.logger.Warn("published event without slug, skipping notification", "url", event.URL)
		return nil
	}

	if err := n.client.NotifyProduct(ctx, event.Slug); err != nil {
		n.logger.Warn("indexnow notification failed", "slug", event.Slug, "error", err)
	}
	return nil
}
