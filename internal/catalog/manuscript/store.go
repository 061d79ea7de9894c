// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package manuscript

import "context"

// # Manuscript Data Access

// Filter narrows the editorial queue listing.
type Filter struct {
	// AuthorID restricts results to one author's manuscripts.
	AuthorID string
	// Status restricts results to a single lifecycle state.
	Status Status
}

// Repository defines the data access contract for the editorial pipeline.
type Repository interface {
	// List returns a filtered, paginated slice of manuscripts and the total count.
	// Content bodies are omitted from list results.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Manuscript, int, error)

	// FindByID returns the manuscript with the given ID, content included.
	FindByID(ctx context.Context, id int64) (*Manuscript, error)

	// Create persists a new draft and backfills its generated ID.
	Create(ctx context.Context, manuscript *Manuscript) error

	// Update persists the author-editable fields (title, synopsis, genre,
	// content, price).
	Update(ctx context.Context, manuscript *Manuscript) error

	// UpdateStatus performs a guarded state transition. The WHERE clause
	// re-checks the expected current status so two concurrent editors
	// cannot both win the same transition.
	UpdateStatus(ctx context.Context, id int64, from, to Status, feedbackNote string) error

	// SetPublished records the catalogue book materialised from the
	// manuscript alongside the terminal status flip.
	SetPublished(ctx context.Context, id int64, bookID int64) error

	// SoftDelete removes a draft from the author's desk.
	SoftDelete(ctx context.Context, id int64) error
}
