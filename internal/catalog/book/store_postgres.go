// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package book provides the PostgreSQL implementation for the catalogue's data access.

It leans on Postgres features to keep discovery fast:
  - Full-Text Search: 'websearch_to_tsquery' over title and description.
  - Window Functions: COUNT(*) OVER() returns totals without a second query.
*/
package book

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

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, slug, description, genre, author_id, author_name,
	price_cents, cover_key, rating_avg, review_count, published_at, created_at, updated_at`

// List returns a filtered, paginated slice of books plus the total count.
//
// Uses COUNT(*) OVER() so pagination metadata costs no extra round-trip.
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + bookColumns + `, COUNT(*) OVER() AS total_count
		FROM catalog.book
		WHERE deleted_at IS NULL`)

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND genre = $%d", argID))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND author_id = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	// Full-text search over title and description
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND to_tsvector('english', title || ' ' || description) @@ websearch_to_tsquery('english', $%d)",
			argID,
		))
		args = append(args, filter.Search)
		argID++
	}

	switch filter.Sort {
	case "price_asc":
		queryBuilder.WriteString(" ORDER BY price_cents ASC, id ASC")
	case "price_desc":
		queryBuilder.WriteString(" ORDER BY price_cents DESC, id ASC")
	case "rating":
		queryBuilder.WriteString(" ORDER BY rating_avg DESC, review_count DESC, id ASC")
	default:
		queryBuilder.WriteString(" ORDER BY published_at DESC, id DESC")
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "book_list")
	}
	defer rows.Close()

	var books []*Book
	var total int

	for rows.Next() {
		entity := &Book{}
		err := rows.Scan(
			&entity.ID, &entity.Title, &entity.Slug, &entity.Description, &entity.Genre,
			&entity.AuthorID, &entity.AuthorName, &entity.PriceCents, &entity.CoverKey,
			&entity.RatingAvg, &entity.ReviewCount,
			&entity.PublishedAt, &entity.CreatedAt, &entity.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "book_list_scan")
		}
		books = append(books, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "book_list_rows")
	}

	return books, total, nil
}

// FindByID returns the book with the given ID, filtering soft-deleted rows.
func (repository *postgresRepository) FindByID(ctx context.Context, id int64) (*Book, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM catalog.book
		WHERE id = $1 AND deleted_at IS NULL`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, id))
}

// FindBySlug returns the book matching the unique SEO identifier.
func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string) (*Book, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM catalog.book
		WHERE slug = $1 AND deleted_at IS NULL`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, slug))
}

// FindForPurchase resolves the given IDs to priced line items.
func (repository *postgresRepository) FindForPurchase(ctx context.Context, ids []int64) ([]PurchaseItem, error) {
	const query = `
		SELECT id, title, price_cents
		FROM catalog.book
		WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "book_find_for_purchase")
	}
	defer rows.Close()

	var items []PurchaseItem
	for rows.Next() {
		var item PurchaseItem
		if err := rows.Scan(&item.ID, &item.Title, &item.PriceCents); err != nil {
			return nil, dberr.Wrap(err, "book_find_for_purchase_scan")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "book_find_for_purchase_rows")
	}

	return items, nil
}

// Create persists a new book and backfills its generated ID.
func (repository *postgresRepository) Create(ctx context.Context, entity *Book) error {
	const query = `
		INSERT INTO catalog.book (
			title, slug, description, genre, author_id, author_name,
			price_cents, cover_key, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`

	now := time.Now()
	if entity.PublishedAt.IsZero() {
		entity.PublishedAt = now
	}
	entity.CreatedAt = now
	entity.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		entity.Title,
		entity.Slug,
		entity.Description,
		entity.Genre,
		entity.AuthorID,
		entity.AuthorName,
		entity.PriceCents,
		entity.CoverKey,
		entity.PublishedAt,
		now,
	).Scan(&entity.ID)
	if err != nil {
		return dberr.Wrap(err, "book_create")
	}

	return nil
}

// Update persists changes to mutable fields. Rating columns are owned by
// the review aggregation and deliberately excluded here.
func (repository *postgresRepository) Update(ctx context.Context, entity *Book) error {
	const query = `
		UPDATE catalog.book
		SET title = $2, slug = $3, description = $4, genre = $5,
		    author_name = $6, price_cents = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`

	entity.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.Title,
		entity.Slug,
		entity.Description,
		entity.Genre,
		entity.AuthorName,
		entity.PriceCents,
		entity.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "book_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// SetCoverKey stores the object-store key of an uploaded cover.
func (repository *postgresRepository) SetCoverKey(ctx context.Context, id int64, key string) error {
	const query = `
		UPDATE catalog.book
		SET cover_key = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, key, time.Now())
	if err != nil {
		return dberr.Wrap(err, "book_set_cover")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// SoftDelete marks a book as deleted without physical row removal.
func (repository *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
		UPDATE catalog.book
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "book_soft_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// scanOne hydrates a single book row, translating pgx.ErrNoRows.
func (repository *postgresRepository) scanOne(row pgx.Row) (*Book, error) {
	entity := &Book{}
	err := row.Scan(
		&entity.ID, &entity.Title, &entity.Slug, &entity.Description, &entity.Genre,
		&entity.AuthorID, &entity.AuthorName, &entity.PriceCents, &entity.CoverKey,
		&entity.RatingAvg, &entity.ReviewCount,
		&entity.PublishedAt, &entity.CreatedAt, &entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "book_find")
	}

	return entity, nil
}
