package publish

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"storepress/internal/breadcrumbs"
	"storepress/internal/feed"
	"storepress/internal/logger"
	"storepress/internal/models"
	"storepress/internal/slug"
	"storepress/internal/store"
)

// maxDraws bounds the random candidate selection before the feed is
// declared exhausted.
const maxDraws = 10

// ErrFeedExhausted means no unpublished candidate could be drawn.
var ErrFeedExhausted = errors.New("no unpublished products available in feed")

// DuplicateError reports a source URL that is already published.
type DuplicateError struct {
	Existing *models.Product
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("product already published: %s", e.Existing.URL)
}

// Feed yields candidate records.
type Feed interface {
	Random(ctx context.Context) (*feed.Record, error)
}

// Rewriter is the best-effort SEO enrichment step.
type Rewriter interface {
	Optimize(ctx context.Context, title, description string) (string, string)
}

// ImageLister resolves a product folder to relative image paths.
type ImageLister interface {
	List(ctx context.Context, folder string) []string
}

// Notifier receives the published row after the insert commits.
type Notifier interface {
	ProductPublished(ctx context.Context, product *models.Product)
}

// Publisher runs the publish pipeline: select, check duplicate, enrich,
// resolve images, derive categories, assign slug, persist, notify.
type Publisher struct {
	feed     Feed
	store    *store.ProductStore
	rewriter Rewriter
	images   ImageLister
	notifier Notifier
	log      *logger.Logger
}

func New(f Feed, s *store.ProductStore, rewriter Rewriter, images ImageLister, notifier Notifier, log *logger.Logger) *Publisher {
	return &Publisher{
		feed:     f,
		store:    s,
		rewriter: rewriter,
		images:   images,
		notifier: notifier,
		log:      log.With("component", "publish"),
	}
}

// PublishNext draws random feed candidates, skipping already-published
// URLs, and publishes the first fresh one. After maxDraws collisions or
// malformed lines the feed is declared exhausted.
func (p *Publisher) PublishNext(ctx context.Context) (*models.Product, error) {
	for attempt := 0; attempt < maxDraws; attempt++ {
		rec, err := p.feed.Random(ctx)
		if err != nil {
			return nil, fmt.Errorf("select candidate: %w", err)
		}
		if rec == nil {
			continue
		}

		existing, err := p.store.ByURL(ctx, rec.URL)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			p.log.Debug("candidate already published, redrawing", "url", rec.URL)
			continue
		}

		return p.PublishRecord(ctx, rec)
	}
	return nil, ErrFeedExhausted
}

// PublishRecord publishes one explicit record. An already-published URL
// is a definite duplicate, not a retry condition.
func (p *Publisher) PublishRecord(ctx context.Context, rec *feed.Record) (*models.Product, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	// CHECK_DUPLICATE before any write.
	existing, err := p.store.ByURL(ctx, rec.URL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Existing: existing}
	}

	// ENRICH: the prompt gets plain text; the stored description keeps
	// its markup.
	optimizedTitle, optimizedDescription := p.rewriter.Optimize(ctx, rec.Title, stripTags(rec.Description))

	// RESOLVE_IMAGES, degrading to the feed-provided names.
	folder := feed.FolderName(rec.URL)
	images := p.images.List(ctx, folder)
	if len(images) == 0 {
		images = fallbackImagePaths(folder, rec.ImageURLs)
	}

	// DERIVE_CATEGORY
	category, subcategory := breadcrumbs.Parse(rec.Breadcrumbs)

	// ASSIGN_SLUG: derive from the optimized title, uniquify in store.
	base := slug.ForProduct(optimizedTitle)
	if base == "" {
		base = slug.ForProduct(rec.Title)
	}
	uniqueSlug, err := p.store.UniqueSlug(ctx, base)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		SearchKey:            rec.SearchKey,
		URL:                  rec.URL,
		Title:                rec.Title,
		Breadcrumbs:          rec.Breadcrumbs,
		ProductID:            rec.ProductID,
		Description:          rec.Description,
		Tags:                 rec.Tags,
		Images:               strings.Join(images, ","),
		Category:             category,
		Subcategory:          subcategory,
		Slug:                 &uniqueSlug,
		OptimizedTitle:       optimizedTitle,
		OptimizedDescription: optimizedDescription,
	}

	// PERSIST, with the unique constraints as the backstop for races.
	if err := p.persist(ctx, product); err != nil {
		return nil, err
	}

	// NOTIFY is fire-and-forget once the row is committed.
	p.notifier.ProductPublished(ctx, product)

	p.log.Info("published product", "url", product.URL, "slug", product.SlugValue())
	return product, nil
}

// persist inserts the row, classifying unique violations: a taken URL is
// a definite duplicate, a taken slug is a lost race retried once with a
// timestamp-suffixed slug.
func (p *Publisher) persist(ctx context.Context, product *models.Product) error {
	err := p.store.Insert(ctx, product)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("persist product: %w", err)
	}

	existing, lookupErr := p.store.ByURL(ctx, product.URL)
	if lookupErr != nil {
		return lookupErr
	}
	if existing != nil {
		return &DuplicateError{Existing: existing}
	}

	// Slug race: another publisher claimed it between probe and insert.
	fallback := store.TimestampSlug(product.SlugValue())
	p.log.Warn("slug conflict on insert, retrying with timestamp suffix", "slug", product.SlugValue(), "fallback", fallback)
	product.Slug = &fallback

	if err := p.store.Insert(ctx, product); err != nil {
		return fmt.Errorf("persist product after slug retry: %w", err)
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func fallbackImagePaths(folder string, names []string) []string {
	if folder == "" || len(names) == 0 {
		return nil
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, fmt.Sprintf("/images/%s/%s", folder, name))
	}
	return paths
}
