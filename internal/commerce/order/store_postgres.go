// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order

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

// NewRepository constructs a PostgreSQL backed order store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// CreateCompleted inserts the order and its lines in one transaction.
//
// The order is born pending and flipped to completed before commit, so the
// pending state never escapes the transaction. The unique constraint on
// intent_id makes a duplicate completion fail with a CONFLICT even if the
// Redis claim was lost.
func (repository *postgresRepository) CreateCompleted(ctx context.Context, entity *Order) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "order_tx_begin")
	}
	defer transaction.Rollback(ctx)

	const insertOrder = `
		INSERT INTO commerce.purchase_order (
			user_id, intent_id, status, total_cents, currency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id`

	now := time.Now()
	entity.Status = StatusPending
	entity.CreatedAt = now
	entity.UpdatedAt = now

	err = transaction.QueryRow(ctx, insertOrder,
		entity.UserID,
		entity.IntentID,
		entity.Status,
		entity.TotalCents,
		entity.Currency,
		now,
	).Scan(&entity.ID)
	if err != nil {
		return dberr.Wrap(err, "order_create")
	}

	const insertLine = `
		INSERT INTO commerce.order_line (order_id, book_id, title, price_cents)
		VALUES ($1, $2, $3, $4)`

	for _, line := range entity.Lines {
		if _, err := transaction.Exec(ctx, insertLine, entity.ID, line.BookID, line.Title, line.PriceCents); err != nil {
			return dberr.Wrap(err, "order_line_create")
		}
	}

	const complete = `
		UPDATE commerce.purchase_order
		SET status = $2, updated_at = $3
		WHERE id = $1`

	entity.Status = StatusCompleted
	entity.UpdatedAt = time.Now()

	if _, err := transaction.Exec(ctx, complete, entity.ID, entity.Status, entity.UpdatedAt); err != nil {
		return dberr.Wrap(err, "order_complete")
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "order_tx_commit")
	}

	return nil
}

const orderColumns = `id, user_id, intent_id, status, total_cents, currency, created_at, updated_at`

// FindByID returns an order with its lines.
func (repository *postgresRepository) FindByID(ctx context.Context, id int64) (*Order, error) {
	const query = `
		SELECT ` + orderColumns + `
		FROM commerce.purchase_order
		WHERE id = $1`

	entity := &Order{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID, &entity.UserID, &entity.IntentID, &entity.Status,
		&entity.TotalCents, &entity.Currency, &entity.CreatedAt, &entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Order")
		}
		return nil, dberr.Wrap(err, "order_find")
	}

	if err := repository.loadLines(ctx, []*Order{entity}); err != nil {
		return nil, err
	}

	return entity, nil
}

// List returns a filtered, paginated slice of orders plus the total count.
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Order, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + orderColumns + `, COUNT(*) OVER() AS total_count
		FROM commerce.purchase_order
		WHERE TRUE`)

	if filter.UserID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND user_id = $%d", argID))
		args = append(args, filter.UserID)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "order_list")
	}
	defer rows.Close()

	var orders []*Order
	var total int

	for rows.Next() {
		entity := &Order{}
		err := rows.Scan(
			&entity.ID, &entity.UserID, &entity.IntentID, &entity.Status,
			&entity.TotalCents, &entity.Currency, &entity.CreatedAt, &entity.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "order_list_scan")
		}
		orders = append(orders, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "order_list_rows")
	}

	if err := repository.loadLines(ctx, orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus overwrites the fulfilment status.
func (repository *postgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	const query = `
		UPDATE commerce.purchase_order
		SET status = $2, updated_at = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return dberr.Wrap(err, "order_update_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Order")
	}

	return nil
}

// loadLines hydrates line items for a batch of orders in one query.
func (repository *postgresRepository) loadLines(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*Order, len(orders))
	for _, entity := range orders {
		ids = append(ids, entity.ID)
		byID[entity.ID] = entity
	}

	const query = `
		SELECT order_id, book_id, title, price_cents
		FROM commerce.order_line
		WHERE order_id = ANY($1)
		ORDER BY order_id, book_id`

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "order_lines_load")
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var line Line
		if err := rows.Scan(&orderID, &line.BookID, &line.Title, &line.PriceCents); err != nil {
			return dberr.Wrap(err, "order_lines_scan")
		}
		if entity, ok := byID[orderID]; ok {
			entity.Lines = append(entity.Lines, line)
		}
	}

	return rows.Err()
}
