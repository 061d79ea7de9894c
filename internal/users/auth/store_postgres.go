// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, display_name, bio, role, created_at, updated_at`

// Create persists a new user record into the users.account table.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, password_hash, display_name, bio, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Bio,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "user_create")
	}

	return nil
}

// FindByID retrieves a user record by primary key, filtering out soft-deleted accounts.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE id = $1 AND deleted_at IS NULL`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, id), "this ID")
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE email = $1 AND deleted_at IS NULL`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, email), "this email")
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE username = $1 AND deleted_at IS NULL`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, username), "this username")
}

// List returns a page of accounts ordered by creation time, newest first.
func (repository *PostgresUserRepository) List(ctx context.Context, params pagination.Params) ([]*User, int, error) {
	const countQuery = `SELECT count(*) FROM users.account WHERE deleted_at IS NULL`
	const listQuery = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "user_count")
	}

	rows, err := repository.pool.Query(ctx, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user_list")
	}
	defer rows.Close()

	users := make([]*User, 0, params.Limit)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.DisplayName, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "user_scan")
		}
		users = append(users, user)
	}

	return users, total, nil
}

// Update persists mutable profile fields (display name, bio).
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET display_name = $2, bio = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query, user.ID, user.DisplayName, user.Bio, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "user_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// UpdatePassword replaces only the stored password hash.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET password_hash = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "user_update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// UpdateRole replaces the account's role. Only reachable from admin handlers.
func (repository *PostgresUserRepository) UpdateRole(ctx context.Context, userID string, role sec.UserRole) error {
	const query = `
		UPDATE users.account
		SET role = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, userID, role, time.Now())
	if err != nil {
		return dberr.Wrap(err, "user_update_role")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// SoftDelete marks the account as deleted without removing the row.
// Books published by the account become orphaned (author reference is nullable).
func (repository *PostgresUserRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
		UPDATE users.account
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "user_soft_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// scanOne hydrates a single user row, translating pgx.ErrNoRows.
func (repository *PostgresUserRepository) scanOne(row pgx.Row, what string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("User with %s", what))
		}
		return nil, dberr.Wrap(err, "user_find")
	}

	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create persists a new tracking session for an authenticated login.
func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (
			id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "session_create")
	}

	return nil
}

// FindByTokenHash returns the live (unexpired, unrevoked) session for a token hash.
func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, user_id, token_hash, user_agent, ip_address, expires_at, is_revoked, created_at
		FROM users.session
		WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > now()`

	session := &Session{}
	err := repository.pool.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, dberr.Wrap(err, "session_find")
	}

	return session, nil
}

// Revoke marks a specific session as permanently invalidated.
func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	const query = `UPDATE users.session SET is_revoked = TRUE WHERE id = $1`

	if _, err := repository.pool.Exec(ctx, query, sessionID); err != nil {
		return dberr.Wrap(err, "session_revoke")
	}
	return nil
}

// RevokeAll revokes every active session belonging to the userID.
func (repository *PostgresSessionRepository) RevokeAll(ctx context.Context, userID string) error {
	const query = `UPDATE users.session SET is_revoked = TRUE WHERE user_id = $1`

	if _, err := repository.pool.Exec(ctx, query, userID); err != nil {
		return dberr.Wrap(err, "session_revoke_all")
	}
	return nil
}

// DeleteExpired physically removes sessions whose ExpiresAt is in the past.
func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context) error {
	const query = `DELETE FROM users.session WHERE expires_at <= now()`

	if _, err := repository.pool.Exec(ctx, query); err != nil {
		return dberr.Wrap(err, "session_delete_expired")
	}
	return nil
}
