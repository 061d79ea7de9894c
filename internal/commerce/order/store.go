// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order

import "context"

// # Order Data Access

// Filter narrows the admin order listing.
type Filter struct {
	// UserID restricts results to one buyer's orders.
	UserID string
	// Status restricts results to a single fulfilment state.
	Status Status
}

// Repository defines the data access contract for orders.
type Repository interface {
	// CreateCompleted inserts the order as pending and flips it to
	// completed inside one transaction, lines included. The unique
	// constraint on intent_id backstops the Redis idempotency claim.
	CreateCompleted(ctx context.Context, order *Order) error

	// FindByID returns an order with its lines.
	FindByID(ctx context.Context, id int64) (*Order, error)

	// List returns a filtered, paginated slice of orders and the total
	// count. Lines are included per order.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Order, int, error)

	// UpdateStatus overwrites the fulfilment status.
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// IntentClaimRepository is the idempotency barrier for payment intents.
//
// A claim is set when the intent is created and consumed exactly once when
// the order completes. Redis keeps claims for 24 hours; the database unique
// constraint covers anything older.
type IntentClaimRepository interface {
	// Set records a fresh claim owned by userID.
	Set(ctx context.Context, intentID, userID string) error

	// Consume atomically takes the claim and returns its owner.
	// Returns apperr.DuplicateOrder when the claim is gone.
	Consume(ctx context.Context, intentID string) (string, error)

	// Restore puts a consumed claim back after a failed completion so the
	// buyer can retry.
	Restore(ctx context.Context, intentID, userID string) error
}
