// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package book defines the core catalogue entities of the Inkwell store.

It manages the lifecycle of published books: metadata, pricing, cover assets,
and the review-derived rating metrics readers sort by.

Core Responsibility:

  - Catalogue: Defines the sellable Book aggregate and its genre classifiers.
  - Discovery: Title search, genre filtering, and SEO slugs.
  - Metrics: Carries the denormalised rating average and review count that the
    social package maintains transactionally.

This package acts as the source of truth for all content-related data models.
*/
package book

import "time"

// # Domain Enums

// Genre classifies a book's shelf placement. Stored as plain text so new
// genres never require a migration.
type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreNonFiction Genre = "non_fiction"
	GenreMystery    Genre = "mystery"
	GenreRomance    Genre = "romance"
	GenreSciFi      Genre = "sci_fi"
	GenreFantasy    Genre = "fantasy"
	GenreBiography  Genre = "biography"
	GenrePoetry     Genre = "poetry"
	GenreChildren   Genre = "children"
	GenreOther      Genre = "other"
)

// IsValid reports whether g is a recognised [Genre] value.
func (g Genre) IsValid() bool {
	switch g {
	case
		GenreFiction,
		GenreNonFiction,
		GenreMystery,
		GenreRomance,
		GenreSciFi,
		GenreFantasy,
		GenreBiography,
		GenrePoetry,
		GenreChildren,
		GenreOther:
		return true
	}
	return false
}

// # Core Entities

// Book is the central aggregate of the catalogue.
// It represents a single published, sellable title.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"` // URL-safe identifier
	Description string `json:"description"`
	Genre       Genre  `json:"genre"`

	// AuthorID references the publishing account. Nullable: retired
	// accounts orphan their books without unlisting them.
	AuthorID   *string `json:"author_id,omitempty"`
	AuthorName string  `json:"author_name"`

	// PriceCents is the sale price in minor currency units (USD cents).
	// Integer arithmetic end to end; no floats ever touch money.
	PriceCents int64 `json:"price_cents"`

	// CoverKey is the object-store key of the cover image, if uploaded.
	CoverKey string `json:"cover_key,omitempty"`
	// CoverURL is a short-lived presigned link, populated at read time.
	CoverURL string `json:"cover_url,omitempty"`

	// # Computed Metrics
	// Maintained transactionally by the review aggregation. Never written
	// by catalogue code.
	RatingAvg   float64 `json:"rating_avg"`
	ReviewCount int     `json:"review_count"`

	PublishedAt time.Time  `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// PurchaseItem is the minimal slice of a book an order line needs.
type PurchaseItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
}

// Filter captures the discovery criteria for catalogue browsing.
type Filter struct {
	// Search is a full-text query matched against title and description.
	Search string
	// Genre narrows results to a single shelf.
	Genre Genre
	// AuthorID narrows results to one author's published books.
	AuthorID string
	// Sort is one of: newest (default), price_asc, price_desc, rating.
	Sort string
}

// # Field Identifiers

// Field names for validation and identity mapping in the catalogue domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldPriceCents  = "price_cents"
	FieldAuthorName  = "author_name"
	FieldSlug        = "slug"
)
