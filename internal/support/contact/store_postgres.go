// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package contact

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed contact store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// Create inserts a submission.
func (repository *postgresRepository) Create(ctx context.Context, entity *Contact) error {
	const query = `
		INSERT INTO support.contact (name, email, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	entity.CreatedAt = time.Now()

	err := repository.pool.QueryRow(ctx, query,
		entity.Name,
		entity.Email,
		entity.Subject,
		entity.Body,
		entity.CreatedAt,
	).Scan(&entity.ID)
	if err != nil {
		return dberr.Wrap(err, "contact_create")
	}

	return nil
}

// List returns a page of submissions plus the total count.
func (repository *postgresRepository) List(ctx context.Context, limit, offset int) ([]*Contact, int, error) {
	const query = `
		SELECT id, name, email, subject, body, created_at, COUNT(*) OVER() AS total_count
		FROM support.contact
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "contact_list")
	}
	defer rows.Close()

	var contacts []*Contact
	var total int

	for rows.Next() {
		entity := &Contact{}
		err := rows.Scan(
			&entity.ID, &entity.Name, &entity.Email,
			&entity.Subject, &entity.Body, &entity.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "contact_list_scan")
		}
		contacts = append(contacts, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "contact_list_rows")
	}

	return contacts, total, nil
}

// Delete removes a submission permanently. Contact submissions carry no
// history worth keeping, so this is a hard delete.
func (repository *postgresRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM support.contact WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "contact_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Contact submission")
	}

	return nil
}
