// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review

import "context"

// Filter narrows admin review listings.
type Filter struct {
	BookID int64
	UserID string
}

// Repository defines the persistence contract for reviews.
//
// Create and Delete also own the catalogue aggregate: each runs the review
// write and the book's rating recompute in one transaction.
type Repository interface {
	// Create inserts the review and recomputes the book's rating columns.
	Create(ctx context.Context, entity *Review) error

	// FindByID returns one review.
	FindByID(ctx context.Context, id int64) (*Review, error)

	// List returns a filtered page of reviews, newest first, with the total count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Review, int, error)

	// Delete removes the review and recomputes the book's rating columns.
	Delete(ctx context.Context, id int64) error
}
