// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package notification

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed notification store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const notificationColumns = `id, user_id, type, message, is_read, read_at, created_at`

// Create inserts an inbox entry.
func (repository *postgresRepository) Create(ctx context.Context, entity *Notification) error {
	const query = `
		INSERT INTO support.notification (user_id, type, message, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id`

	entity.CreatedAt = time.Now()
	entity.IsRead = false

	err := repository.pool.QueryRow(ctx, query,
		entity.UserID,
		entity.Type,
		entity.Message,
		entity.CreatedAt,
	).Scan(&entity.ID)
	if err != nil {
		return dberr.Wrap(err, "notification_create")
	}

	return nil
}

// FindByID returns one entry.
func (repository *postgresRepository) FindByID(ctx context.Context, id int64) (*Notification, error) {
	const query = `
		SELECT ` + notificationColumns + `
		FROM support.notification
		WHERE id = $1`

	entity := &Notification{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.UserID, &entity.Type, &entity.Message,
		&entity.IsRead, &entity.ReadAt, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Notification")
		}
		return nil, dberr.Wrap(err, "notification_find")
	}

	return entity, nil
}

// ListForUser returns a page of the user's entries plus the total count.
func (repository *postgresRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, int, error) {
	const query = `
		SELECT ` + notificationColumns + `, COUNT(*) OVER() AS total_count
		FROM support.notification
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "notification_list")
	}
	defer rows.Close()

	var notifications []*Notification
	var total int

	for rows.Next() {
		entity := &Notification{}
		err := rows.Scan(
			&entity.ID, &entity.UserID, &entity.Type, &entity.Message,
			&entity.IsRead, &entity.ReadAt, &entity.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "notification_list_scan")
		}
		notifications = append(notifications, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "notification_list_rows")
	}

	return notifications, total, nil
}

// MarkRead stamps the entry as read.
func (repository *postgresRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `
		UPDATE support.notification
		SET is_read = TRUE, read_at = COALESCE(read_at, $2)
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "notification_mark_read")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification")
	}

	return nil
}

// Delete removes an entry permanently.
func (repository *postgresRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM support.notification WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "notification_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification")
	}

	return nil
}
