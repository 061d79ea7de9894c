// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package contact implements the public contact form and its admin console.

Submissions are anonymous writes: no account is required, so the endpoint
leans on the global rate limiter rather than authentication for abuse
control.
*/
package contact

import "time"

// Contact is one submission from the public contact form.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Names

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldBody    = "body"
)
