package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storepress/internal/logger"
	"storepress/internal/models"
)

// slugProbeLimit bounds the linear probe before the resolver gives up
// and switches to a timestamp suffix.
const slugProbeLimit = 500

// ProductStore is the gorm-backed repository for published products.
type ProductStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, log *logger.Logger) *ProductStore {
	return &ProductStore{db: db, log: log.With("component", "store")}
}

// DB exposes the underlying handle for schema maintenance endpoints.
func (s *ProductStore) DB() *gorm.DB {
	return s.db
}

// ByURL fetches a product by its source URL, nil when absent.
func (s *ProductStore) ByURL(ctx context.Context, url string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product by url: %w", err)
	}
	return &product, nil
}

// BySlug fetches a product by slug, nil when absent.
func (s *ProductStore) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product by slug: %w", err)
	}
	return &product, nil
}

// All returns every product, newest first.
func (s *ProductStore) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("published_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return products, nil
}

// Insert persists a new product row. Unique violations surface as
// gorm.ErrDuplicatedKey for the caller to classify (url vs slug race).
func (s *ProductStore) Insert(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// DeleteByURL removes a product; reports whether a row was deleted.
func (s *ProductStore) DeleteByURL(ctx context.Context, url string) (bool, error) {
	res := s.db.WithContext(ctx).Where("url = ?", url).Delete(&models.Product{})
	if res.Error != nil {
		return false, fmt.Errorf("delete product: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SlugExists reports store membership of a candidate slug.
func (s *ProductStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// UniqueSlug resolves a free slug by linear probing: base, base-1,
// base-2, ... The probe sequence is not race-safe across concurrent
// publishers; the slug column's unique constraint is the real guard and
// insert-time conflicts are retried with TimestampSlug. An empty base is
// degenerate but handled.
func (s *ProductStore) UniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := s.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if i > slugProbeLimit {
			return TimestampSlug(base), nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// TimestampSlug disambiguates a contended base slug with the current
// unix-millisecond clock.
func TimestampSlug(base string) string {
	if base == "" {
		return fmt.Sprintf("product-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli())
}

// Categories returns the distinct non-null categories.
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// Subcategories returns the distinct non-null subcategories.
func (s *ProductStore) Subcategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "subcategory")
}

func (s *ProductStore) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", column, err)
	}
	return values, nil
}
