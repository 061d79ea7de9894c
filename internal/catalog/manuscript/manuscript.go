// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package manuscript implements the editorial pipeline between authors and the
published catalogue.

Authors draft and submit manuscripts; editors review them and either accept,
reject, or request a revision. Accepted manuscripts are published, which
materialises a catalogue [book.Book].

# Lifecycle

	draft → submitted → in_review → accepted → published
	                              → rejected
	                              → revision_requested → submitted

Every transition is validated against this table. Anything else is rejected
as a validation error naming the attempted pair.
*/
package manuscript

import "time"

// # Lifecycle States

// Status represents the editorial state of a manuscript.
type Status string

const (
	// StatusDraft is the initial state. Only the author can see a draft.
	StatusDraft Status = "draft"

	// StatusSubmitted means the author has handed the manuscript to the
	// editorial queue. Content is frozen until a decision lands.
	StatusSubmitted Status = "submitted"

	// StatusInReview means an editor has picked the manuscript up.
	StatusInReview Status = "in_review"

	// StatusRevisionRequested returns the manuscript to the author with
	// feedback. The author may edit and resubmit.
	StatusRevisionRequested Status = "revision_requested"

	// StatusAccepted means the manuscript passed review and awaits an
	// explicit publish step.
	StatusAccepted Status = "accepted"

	// StatusRejected is terminal. The manuscript stays readable but frozen.
	StatusRejected Status = "rejected"

	// StatusPublished is terminal. A catalogue book now exists for it.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case
		StatusDraft,
		StatusSubmitted,
		StatusInReview,
		StatusRevisionRequested,
		StatusAccepted,
		StatusRejected,
		StatusPublished:
		return true
	}
	return false
}

// transitions is the single source of truth for the editorial state machine.
var transitions = map[Status][]Status{
	StatusDraft:             {StatusSubmitted},
	StatusSubmitted:         {StatusInReview},
	StatusInReview:          {StatusAccepted, StatusRejected, StatusRevisionRequested},
	StatusRevisionRequested: {StatusSubmitted},
	StatusAccepted:          {StatusPublished},
	StatusRejected:          {},
	StatusPublished:         {},
}

// CanTransition reports whether moving from s to target is a legal step.
func (s Status) CanTransition(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Editable reports whether the author may still modify content in this state.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusRevisionRequested
}

// # Core Entities

// Manuscript is an author's work moving through the editorial pipeline.
type Manuscript struct {
	ID       int64  `json:"id"`
	AuthorID string `json:"author_id"`

	Title    string `json:"title"`
	Synopsis string `json:"synopsis"`
	Genre    string `json:"genre"`
	Content  string `json:"content,omitempty"`

	// PriceCents is the author's proposed sale price, carried into the
	// catalogue entry at publish time.
	PriceCents int64 `json:"price_cents"`

	Status Status `json:"status"`

	// FeedbackNote carries the editor's decision rationale back to the author.
	FeedbackNote string `json:"feedback_note,omitempty"`

	// PublishedBookID links to the catalogue entry once published.
	PublishedBookID *int64 `json:"published_book_id,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldSynopsis   = "synopsis"
	FieldGenre      = "genre"
	FieldContent    = "content"
	FieldPriceCents = "price_cents"
	FieldStatus     = "status"
	FieldDecision   = "decision"
)
