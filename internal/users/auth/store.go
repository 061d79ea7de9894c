// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package auth

import (
	"context"
	"time"

	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Services depend on this port rather than on pgx directly, so the identity
// and access-control logic is testable without a database.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List returns a page of accounts plus the total count (admin view).
	List(ctx context.Context, params pagination.Params) ([]*User, int, error)

	// Create persists a brand-new user account.
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// UpdateRole replaces the account's role. Admin-only call path.
	UpdateRole(ctx context.Context, userID string, role sec.UserRole) error

	// SoftDelete marks the account as deleted without removing the row.
	SoftDelete(ctx context.Context, id string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {
	// Create persists a new tracking session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns the active session matching the given token hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the userID.
	RevokeAll(ctx context.Context, userID string) error

	// DeleteExpired physically removes sessions whose ExpiresAt is in the past.
	DeleteExpired(ctx context.Context) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {
	// Set stores a reset token associated with a userID for a limited duration.
	Set(ctx context.Context, token string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(ctx context.Context, token string) error
}
