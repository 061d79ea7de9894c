// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package account handles user profile management and administrative user control.

It provides functionalities for users to view and update their private identity
data, and for administrators to list accounts, promote readers to authors, and
retire accounts.

# Architecture

  - Entities: PublicProfile (DTO). The User entity itself lives in the auth package.
  - Ports: Consumer-side contracts satisfied by the auth package's repositories.
  - Security: Role changes and account retirement are admin-only operations.
*/
package account

import (
	"context"
	"time"

	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/users/auth"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// # Domain Entities

// PublicProfile is the safety-mapped view of an account for public consumption.
// It omits email and timestamps the owner has not chosen to share.
type PublicProfile struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Bio         string       `json:"bio,omitempty"`
	Role        sec.UserRole `json:"role"`
	JoinedAt    time.Time    `json:"joined_at"`
}

// PublicView maps a full user entity down to its public profile.
func PublicView(user *auth.User) *PublicProfile {
	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		Role:        user.Role,
		JoinedAt:    user.CreatedAt,
	}
}

// # Repository Contracts

// AccountRepository is the persistence contract this package consumes.
// The auth package's PostgresUserRepository satisfies it.
type AccountRepository interface {
	// FindByID retrieves a user record by their unique ID.
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// List returns a page of accounts plus the total count.
	List(ctx context.Context, params pagination.Params) ([]*auth.User, int, error)

	// Update modifies the mutable profile fields of an existing user.
	Update(ctx context.Context, user *auth.User) error

	// UpdateRole replaces the account's authorization role.
	UpdateRole(ctx context.Context, userID string, role sec.UserRole) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(ctx context.Context, id string) error
}

// SessionRevoker terminates sessions when an account is retired.
// The auth package's PostgresSessionRepository satisfies it.
type SessionRevoker interface {
	// RevokeAll terminates every session for a user.
	RevokeAll(ctx context.Context, userID string) error
}
