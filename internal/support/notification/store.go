// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package notification

import "context"

// Repository defines the persistence contract for the inbox.
type Repository interface {
	// Create inserts an inbox entry.
	Create(ctx context.Context, entity *Notification) error

	// FindByID returns one entry.
	FindByID(ctx context.Context, id int64) (*Notification, error)

	// ListForUser returns a page of the user's entries, newest first, with
	// the total count.
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, int, error)

	// MarkRead stamps the entry as read. Marking twice is a no-op.
	MarkRead(ctx context.Context, id int64) error

	// Delete removes an entry permanently.
	Delete(ctx context.Context, id int64) error
}
