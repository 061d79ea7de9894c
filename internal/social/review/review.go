// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package review implements reader reviews and the rating aggregation that
feeds the catalogue.

# Aggregation

A book's rating and review count are denormalised onto the catalogue row.
Both insert and delete recompute them from the full review set inside the
same transaction as the write, so the aggregates can never drift from the
reviews they summarise.
*/
package review

import "time"

// # Entity Definition

// Review is a reader's verdict on a book. Reviews are immutable once
// written; only an admin can remove one.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// # Rating Bounds

const (
	// RatingMin is the lowest allowed star rating.
	RatingMin = 1
	// RatingMax is the highest allowed star rating.
	RatingMax = 5
)

// # Field Names

const (
	FieldRating  = "rating"
	FieldComment = "comment"
	FieldBookID  = "book_id"
)
