// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review

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

// NewRepository constructs a PostgreSQL backed review store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const reviewColumns = `id, book_id, user_id, rating, comment, created_at`

// recomputeRating rewrites the book's denormalised rating columns from the
// full review set. The catalogue row UPDATE takes a row lock, so two
// concurrent reviewers recompute one after the other and neither result is
// lost. The stored rating is the rounded mean.
const recomputeRating = `
	UPDATE catalog.book
	SET rating_avg = COALESCE(
			(SELECT ROUND(AVG(rating)) FROM social.review WHERE book_id = $1), 0),
		review_count = (SELECT COUNT(*) FROM social.review WHERE book_id = $1),
		updated_at = $2
	WHERE id = $1`

// Create inserts the review and recomputes the book's rating columns in one
// transaction.
func (repository *postgresRepository) Create(ctx context.Context, entity *Review) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "review_tx_begin")
	}
	defer transaction.Rollback(ctx)

	const insert = `
		INSERT INTO social.review (book_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	entity.CreatedAt = time.Now()

	err = transaction.QueryRow(ctx, insert,
		entity.BookID,
		entity.UserID,
		entity.Rating,
		entity.Comment,
		entity.CreatedAt,
	).Scan(&entity.ID)
	if err != nil {
		wrapped := dberr.Wrap(err, "review_create")
		if appErr := apperr.As(wrapped); appErr != nil && appErr.Code == "CONFLICT" {
			return apperr.Conflict("You have already reviewed this book")
		}
		return wrapped
	}

	if _, err := transaction.Exec(ctx, recomputeRating, entity.BookID, time.Now()); err != nil {
		return dberr.Wrap(err, "review_recompute")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "review_tx_commit")
	}

	return nil
}

// FindByID returns one review.
func (repository *postgresRepository) FindByID(ctx context.Context, id int64) (*Review, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM social.review
		WHERE id = $1`

	entity := &Review{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.BookID, &entity.UserID,
		&entity.Rating, &entity.Comment, &entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "review_find")
	}

	return entity, nil
}

// List returns a filtered, paginated slice of reviews plus the total count.
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + reviewColumns + `, COUNT(*) OVER() AS total_count
		FROM social.review
		WHERE TRUE`)

	if filter.BookID != 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND book_id = $%d", argID))
		args = append(args, filter.BookID)
		argID++
	}

	if filter.UserID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND user_id = $%d", argID))
		args = append(args, filter.UserID)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "review_list")
	}
	defer rows.Close()

	var reviews []*Review
	var total int

	for rows.Next() {
		entity := &Review{}
		err := rows.Scan(
			&entity.ID, &entity.BookID, &entity.UserID,
			&entity.Rating, &entity.Comment, &entity.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "review_list_scan")
		}
		reviews = append(reviews, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "review_list_rows")
	}

	return reviews, total, nil
}

// Delete removes the review and recomputes the book's rating columns in one
// transaction.
func (repository *postgresRepository) Delete(ctx context.Context, id int64) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "review_tx_begin")
	}
	defer transaction.Rollback(ctx)

	const remove = `
		DELETE FROM social.review
		WHERE id = $1
		RETURNING book_id`

	var bookID int64
	if err := transaction.QueryRow(ctx, remove, id).Scan(&bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Review")
		}
		return dberr.Wrap(err, "review_delete")
	}

	if _, err := transaction.Exec(ctx, recomputeRating, bookID, time.Now()); err != nil {
		return dberr.Wrap(err, "review_recompute")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "review_tx_commit")
	}

	return nil
}
