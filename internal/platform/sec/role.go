// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// A single role column replaces the boolean isAuthor/isAdmin flags that
// tend to accumulate in CRUD apps, so that route-level policy can be
// declared once per route instead of re-checked ad hoc in every handler.
type UserRole string

const (
	// Unrestricted system access: catalogue, users, orders, moderation
	RoleAdmin UserRole = "admin"

	// Can submit and manage their own manuscripts
	RoleAuthor UserRole = "author"

	// Default role for standard registered users (browse, purchase, review)
	RoleReader UserRole = "reader"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleAuthor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
