package models

import (
	"strings"
	"time"
)

// Product is one published row. The pipeline treats it as append-only:
// only slug, category and subcategory are ever back-filled after insert.
type Product struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	SearchKey            string    `json:"search_key" gorm:"index:idx_search_key;not null"`
	URL                  string    `json:"url" gorm:"uniqueIndex:idx_url;not null"`
	Title                string    `json:"title" gorm:"not null"`
	Breadcrumbs          string    `json:"breadcrumbs"`
	ProductID            int64     `json:"product_id"`
	Description          string    `json:"description"`
	Tags                 string    `json:"tags"`
	Images               string    `json:"images"`
	Category             *string   `json:"category" gorm:"index:idx_category"`
	Subcategory          *string   `json:"subcategory" gorm:"index:idx_subcategory"`
	Slug                 *string   `json:"slug" gorm:"uniqueIndex:idx_slug"`
	PublishedAt          time.Time `json:"published_at" gorm:"index:idx_published_at,sort:desc;autoCreateTime"`
	OptimizedTitle       string    `json:"optimized_title"`
	OptimizedDescription string    `json:"optimized_description"`
}

// ImageList splits the comma-joined images column.
func (p *Product) ImageList() []string {
	if p.Images == "" {
		return nil
	}
	parts := strings.Split(p.Images, ",")
	images := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			images = append(images, s)
		}
	}
	return images
}

// SlugValue returns the slug or "" when it has not been assigned yet.
func (p *Product) SlugValue() string {
	if p.Slug == nil {
		return ""
	}
	return *p.Slug
}
