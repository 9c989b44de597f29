package store

import (
	"context"
	"fmt"

	"storepress/internal/breadcrumbs"
	"storepress/internal/models"
	"storepress/internal/slug"
)

// SlugChange records one overwrite made by the regeneration pass.
type SlugChange struct {
	ID      uint   `json:"id"`
	OldSlug string `json:"old_slug"`
	NewSlug string `json:"new_slug"`
}

// BackfillCategories re-parses breadcrumbs for rows missing a category
// or subcategory. Rows already holding what their breadcrumbs derive are
// not re-written, so a repeat run reports zero updates.
func (s *ProductStore) BackfillCategories(ctx context.Context) (int, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Select("id", "breadcrumbs", "category", "subcategory").
		Where("category IS NULL OR subcategory IS NULL").
		Find(&products).Error
	if err != nil {
		return 0, fmt.Errorf("query rows without categories: %w", err)
	}

	updated := 0
	for _, product := range products {
		if product.Breadcrumbs == "" {
			continue
		}

		category, subcategory := breadcrumbs.Parse(product.Breadcrumbs)
		if ptrEqual(category, product.Category) && ptrEqual(subcategory, product.Subcategory) {
			continue
		}

		res := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{"category": category, "subcategory": subcategory})
		if res.Error != nil {
			return updated, fmt.Errorf("update categories for product %d: %w", product.ID, res.Error)
		}
		updated++
	}
	return updated, nil
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// BackfillSlugs assigns slugs to rows that have none, deriving from the
// optimized title when present. Existing non-empty slugs are never
// touched here; that is the regeneration pass's job.
func (s *ProductStore) BackfillSlugs(ctx context.Context) (updated, skipped int, err error) {
	var products []models.Product
	err = s.db.WithContext(ctx).
		Select("id", "title", "optimized_title", "slug").
		Find(&products).Error
	if err != nil {
		return 0, 0, fmt.Errorf("query rows for slug backfill: %w", err)
	}

	for _, product := range products {
		if product.SlugValue() != "" {
			skipped++
			continue
		}

		title := product.OptimizedTitle
		if title == "" {
			title = product.Title
		}
		if title == "" {
			skipped++
			continue
		}

		base := slug.ForProduct(title)
		unique, uerr := s.UniqueSlug(ctx, base)
		if uerr != nil {
			return updated, skipped, uerr
		}

		if uerr := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("slug", unique).Error; uerr != nil {
			s.log.Error("slug backfill update failed", "id", product.ID, "error", uerr)
			skipped++
			continue
		}
		updated++
	}
	return updated, skipped, nil
}

// RegenerateSlugs re-derives every slug from the optimized title
// (falling back to the raw title). The only pass allowed to overwrite an
// existing slug; rows whose slug already matches are skipped. A failed
// uniquification falls back to a timestamp+id suffix.
func (s *ProductStore) RegenerateSlugs(ctx context.Context) (changes []SlugChange, skipped int, err error) {
	var products []models.Product
	err = s.db.WithContext(ctx).
		Select("id", "title", "optimized_title", "slug").
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("query rows for slug regeneration: %w", err)
	}

	for _, product := range products {
		title := product.OptimizedTitle
		if title == "" {
			title = product.Title
		}
		if title == "" {
			skipped++
			continue
		}

		base := slug.ForProduct(title)
		current := product.SlugValue()
		if current == base {
			skipped++
			continue
		}

		unique, uerr := s.UniqueSlug(ctx, base)
		if uerr != nil {
			s.log.Warn("slug uniquification failed, using timestamp fallback", "id", product.ID, "error", uerr)
			unique = fmt.Sprintf("%s-%d", TimestampSlug(base), product.ID)
		}

		if uerr := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("slug", unique).Error; uerr != nil {
			s.log.Error("slug regeneration update failed", "id", product.ID, "error", uerr)
			skipped++
			continue
		}

		oldSlug := current
		if oldSlug == "" {
			oldSlug = "NULL"
		}
		changes = append(changes, SlugChange{ID: product.ID, OldSlug: oldSlug, NewSlug: unique})
	}
	return changes, skipped, nil
}

// SlugReport compares each row's stored slug with the one its title
// derives today; used by the debug endpoint.
type SlugReport struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	CurrentSlug  string `json:"current_slug"`
	ExpectedSlug string `json:"expected_slug"`
	Match        bool   `json:"match"`
}

func (s *ProductStore) DebugSlugs(ctx context.Context) ([]SlugReport, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Select("id", "title", "optimized_title", "slug").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("query rows for slug report: %w", err)
	}

	reports := make([]SlugReport, 0, len(products))
	for _, product := range products {
		title := product.OptimizedTitle
		if title == "" {
			title = product.Title
		}
		expected := slug.ForProduct(title)
		reports = append(reports, SlugReport{
			ID:           product.ID,
			Title:        product.Title,
			CurrentSlug:  product.SlugValue(),
			ExpectedSlug: expected,
			Match:        product.SlugValue() == expected,
		})
	}
	return reports, nil
}
