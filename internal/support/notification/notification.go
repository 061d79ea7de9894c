// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package notification implements the per-user inbox.

Other domains emit into it through their own narrow Notifier ports; the
[Service.Notify] method satisfies all of them. Emission is best-effort from
the caller's point of view: senders log delivery failures instead of
failing the operation that triggered them.
*/
package notification

import "time"

// # Well-Known Types

// Notification type tags emitted by the application itself.
const (
	TypeOrderCompleted      = "order_completed"
	TypeManuscriptDecision  = "manuscript_decision"
	TypeManuscriptPublished = "manuscript_published"
)

// Notification is one inbox entry.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// # Field Names

const (
	FieldType    = "type"
	FieldMessage = "message"
	FieldUserID  = "user_id"
)
