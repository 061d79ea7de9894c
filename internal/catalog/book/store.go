// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for the catalogue domain.
type Repository interface {
	// List returns a filtered, paginated slice of books and the total count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// FindByID returns the book with the given ID.
	// Returns apperr.NotFound if missing or soft-deleted.
	FindByID(ctx context.Context, id int64) (*Book, error)

	// FindBySlug returns the book matching the unique SEO identifier.
	FindBySlug(ctx context.Context, slug string) (*Book, error)

	// FindForPurchase resolves the given IDs to priced line items, skipping
	// missing and unlisted books. Order services compare the result length
	// against the request to reject dead references.
	FindForPurchase(ctx context.Context, ids []int64) ([]PurchaseItem, error)

	// Create persists a new book and backfills its generated ID.
	Create(ctx context.Context, book *Book) error

	// Update persists changes to an existing book's mutable fields.
	Update(ctx context.Context, book *Book) error

	// SetCoverKey stores the object-store key of an uploaded cover.
	SetCoverKey(ctx context.Context, id int64, key string) error

	// SoftDelete marks a book as deleted without physical row removal.
	SoftDelete(ctx context.Context, id int64) error
}
