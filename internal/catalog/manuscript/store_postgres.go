// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package manuscript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed manuscript store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const manuscriptColumns = `id, author_id, title, synopsis, genre, price_cents,
	status, feedback_note, published_book_id, submitted_at, reviewed_at, created_at, updated_at`

// List returns a filtered, paginated slice of manuscripts plus the total count.
// Content bodies stay out of list queries; they can run to megabytes.
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Manuscript, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + manuscriptColumns + `, COUNT(*) OVER() AS total_count
		FROM catalog.manuscript
		WHERE deleted_at IS NULL`)

	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND author_id = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY updated_at DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "manuscript_list")
	}
	defer rows.Close()

	var manuscripts []*Manuscript
	var total int

	for rows.Next() {
		entity := &Manuscript{}
		err := rows.Scan(
			&entity.ID, &entity.AuthorID, &entity.Title, &entity.Synopsis, &entity.Genre,
			&entity.PriceCents, &entity.Status, &entity.FeedbackNote, &entity.PublishedBookID,
			&entity.SubmittedAt, &entity.ReviewedAt, &entity.CreatedAt, &entity.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "manuscript_list_scan")
		}
		manuscripts = append(manuscripts, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "manuscript_list_rows")
	}

	return manuscripts, total, nil
}

// FindByID returns the manuscript with the given ID, content included.
func (repository *postgresRepository) FindByID(ctx context.Context, id int64) (*Manuscript, error) {
	const query = `
		SELECT ` + manuscriptColumns + `, content
		FROM catalog.manuscript
		WHERE id = $1 AND deleted_at IS NULL`

	entity := &Manuscript{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.AuthorID, &entity.Title, &entity.Synopsis, &entity.Genre,
		&entity.PriceCents, &entity.Status, &entity.FeedbackNote, &entity.PublishedBookID,
		&entity.SubmittedAt, &entity.ReviewedAt, &entity.CreatedAt, &entity.UpdatedAt,
		&entity.Content,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manuscript")
		}
		return nil, dberr.Wrap(err, "manuscript_find")
	}

	return entity, nil
}

// Create persists a new draft and backfills its generated ID.
func (repository *postgresRepository) Create(ctx context.Context, entity *Manuscript) error {
	const query = `
		INSERT INTO catalog.manuscript (
			author_id, title, synopsis, genre, content, price_cents,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`

	now := time.Now()
	entity.Status = StatusDraft
	entity.CreatedAt = now
	entity.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		entity.AuthorID,
		entity.Title,
		entity.Synopsis,
		entity.Genre,
		entity.Content,
		entity.PriceCents,
		entity.Status,
		now,
	).Scan(&entity.ID)
	if err != nil {
		return dberr.Wrap(err, "manuscript_create")
	}

	return nil
}

// Update persists the author-editable fields.
func (repository *postgresRepository) Update(ctx context.Context, entity *Manuscript) error {
	const query = `
		UPDATE catalog.manuscript
		SET title = $2, synopsis = $3, genre = $4, content = $5,
		    price_cents = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`

	entity.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.Title,
		entity.Synopsis,
		entity.Genre,
		entity.Content,
		entity.PriceCents,
		entity.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "manuscript_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manuscript")
	}

	return nil
}

// UpdateStatus performs a guarded state transition.
//
// The WHERE clause re-checks the expected current status, so a concurrent
// transition loses cleanly instead of clobbering. Submission and review
// timestamps are stamped by the state being entered.
func (repository *postgresRepository) UpdateStatus(ctx context.Context, id int64, from, to Status, feedbackNote string) error {
	const query = `
		UPDATE catalog.manuscript
		SET status = $3,
		    feedback_note = CASE WHEN $4 <> '' THEN $4 ELSE feedback_note END,
		    submitted_at = CASE WHEN $3 = 'submitted' THEN $5 ELSE submitted_at END,
		    reviewed_at = CASE WHEN $3 IN ('accepted', 'rejected', 'revision_requested') THEN $5 ELSE reviewed_at END,
		    updated_at = $5
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, from, to, feedbackNote, time.Now())
	if err != nil {
		return dberr.Wrap(err, "manuscript_update_status")
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost transition race.
		if _, findErr := repository.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return illegalTransition(from, to)
	}

	return nil
}

// SetPublished records the catalogue book and flips the terminal status.
func (repository *postgresRepository) SetPublished(ctx context.Context, id int64, bookID int64) error {
	const query = `
		UPDATE catalog.manuscript
		SET status = $3, published_book_id = $4, updated_at = $5
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, StatusAccepted, StatusPublished, bookID, time.Now())
	if err != nil {
		return dberr.Wrap(err, "manuscript_set_published")
	}

	if tag.RowsAffected() == 0 {
		if _, findErr := repository.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return illegalTransition(StatusAccepted, StatusPublished)
	}

	return nil
}

// SoftDelete removes a draft from the author's desk.
func (repository *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
		UPDATE catalog.manuscript
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "manuscript_soft_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manuscript")
	}

	return nil
}
