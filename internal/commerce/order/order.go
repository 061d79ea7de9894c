// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package order implements the checkout and fulfilment workflow.

Checkout is a two-step flow: the storefront first reserves a payment intent,
then completes the order once the processor confirms payment. Exactly one
order can ever be completed per payment intent; a Redis claim enforces the
idempotency barrier.

# Status Vocabulary

One vocabulary covers the whole fulfilment pipeline:

	pending → completed        (checkout path, single transaction)
	processing, shipped, completed, cancelled   (admin fulfilment updates)
*/
package order

import "time"

// # Lifecycle States

// Status represents the fulfilment state of an order.
type Status string

const (
	// StatusPending is the transient state an order passes through inside
	// the checkout transaction. It is never observable through the API.
	StatusPending Status = "pending"

	// StatusProcessing means fulfilment has started.
	StatusProcessing Status = "processing"

	// StatusShipped means physical copies are on their way.
	StatusShipped Status = "shipped"

	// StatusCompleted means payment captured and fulfilment finished.
	StatusCompleted Status = "completed"

	// StatusCancelled is terminal. Money, if captured, is refunded out of band.
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AdminAssignable reports whether an admin may set this status directly.
// Pending is excluded: it only exists inside the checkout transaction.
func (s Status) AdminAssignable() bool {
	return s.IsValid() && s != StatusPending
}

// # Core Entities

// Order is a completed purchase with its line items.
type Order struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`

	// IntentID is the payment-intent reference. Unique: one order per intent.
	IntentID string `json:"intent_id"`

	Status Status `json:"status"`

	// TotalCents is the charged amount in minor currency units.
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`

	Lines []Line `json:"lines,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Line is one purchased book within an order. Title and price are frozen
// at purchase time; later catalogue edits never rewrite history.
type Line struct {
	BookID     int64  `json:"book_id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
}

// # Field Identifiers

const (
	FieldAmount   = "amount"
	FieldIntentID = "intent_id"
	FieldBookIDs  = "book_ids"
	FieldTotal    = "total"
	FieldStatus   = "status"
)
