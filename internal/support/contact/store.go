// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package contact

import "context"

// Repository defines the persistence contract for contact submissions.
type Repository interface {
	// Create inserts a submission.
	Create(ctx context.Context, entity *Contact) error

	// List returns a page of submissions, newest first, with the total count.
	List(ctx context.Context, limit, offset int) ([]*Contact, int, error)

	// Delete removes a submission permanently.
	Delete(ctx context.Context, id int64) error
}
