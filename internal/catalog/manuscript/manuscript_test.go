// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package manuscript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-press/inkwell/internal/catalog/manuscript"
)

/*
TestStatus_CanTransition verifies the full editorial state machine table.
*/
func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    manuscript.Status
		to      manuscript.Status
		allowed bool
	}{
		{"draft to submitted", manuscript.StatusDraft, manuscript.StatusSubmitted, true},
		{"draft to in_review skips the queue", manuscript.StatusDraft, manuscript.StatusInReview, false},
		{"draft to published skips everything", manuscript.StatusDraft, manuscript.StatusPublished, false},
		{"submitted to in_review", manuscript.StatusSubmitted, manuscript.StatusInReview, true},
		{"submitted to accepted skips review", manuscript.StatusSubmitted, manuscript.StatusAccepted, false},
		{"in_review to accepted", manuscript.StatusInReview, manuscript.StatusAccepted, true},
		{"in_review to rejected", manuscript.StatusInReview, manuscript.StatusRejected, true},
		{"in_review to revision_requested", manuscript.StatusInReview, manuscript.StatusRevisionRequested, true},
		{"in_review to published skips acceptance", manuscript.StatusInReview, manuscript.StatusPublished, false},
		{"revision_requested back to submitted", manuscript.StatusRevisionRequested, manuscript.StatusSubmitted, true},
		{"revision_requested cannot self-accept", manuscript.StatusRevisionRequested, manuscript.StatusAccepted, false},
		{"accepted to published", manuscript.StatusAccepted, manuscript.StatusPublished, true},
		{"accepted cannot regress", manuscript.StatusAccepted, manuscript.StatusSubmitted, false},
		{"rejected is terminal", manuscript.StatusRejected, manuscript.StatusSubmitted, false},
		{"published is terminal", manuscript.StatusPublished, manuscript.StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

/*
TestStatus_Editable verifies that only desk states accept author edits.
*/
func TestStatus_Editable(t *testing.T) {
	assert.True(t, manuscript.StatusDraft.Editable())
	assert.True(t, manuscript.StatusRevisionRequested.Editable())

	assert.False(t, manuscript.StatusSubmitted.Editable())
	assert.False(t, manuscript.StatusInReview.Editable())
	assert.False(t, manuscript.StatusAccepted.Editable())
	assert.False(t, manuscript.StatusRejected.Editable())
	assert.False(t, manuscript.StatusPublished.Editable())
}

/*
TestStatus_IsValid verifies recognised and unknown status values.
*/
func TestStatus_IsValid(t *testing.T) {
	valid := []manuscript.Status{
		manuscript.StatusDraft,
		manuscript.StatusSubmitted,
		manuscript.StatusInReview,
		manuscript.StatusRevisionRequested,
		manuscript.StatusAccepted,
		manuscript.StatusRejected,
		manuscript.StatusPublished,
	}
	for _, status := range valid {
		assert.True(t, status.IsValid(), string(status))
	}

	assert.False(t, manuscript.Status("pending").IsValid())
	assert.False(t, manuscript.Status("").IsValid())
}
