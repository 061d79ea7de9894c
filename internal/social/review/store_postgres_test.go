// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/social/review"
)

// # Integration Harness
//
// These tests need a migrated PostgreSQL database and are skipped unless
// TEST_DATABASE_URL points at one.

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// seedReader inserts a throwaway account and returns its ID.
func seedReader(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.NewString()
	tag := id[:8]
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users.account (id, username, email, password_hash)
		VALUES ($1, $2, $3, 'x')`,
		id, "reviewer_"+tag, fmt.Sprintf("reviewer_%s@test.local", tag))
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users.account WHERE id = $1`, id)
	})

	return id
}

// seedBook inserts a catalogue row with zeroed rating columns.
func seedBook(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()

	var id int64
	slug := "rating-fixture-" + uuid.NewString()[:8]
	err := pool.QueryRow(context.Background(), `
		INSERT INTO catalog.book (title, slug, genre, author_name, price_cents)
		VALUES ('Rating Fixture', $1, 'fiction', 'Test Author', 999)
		RETURNING id`, slug).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM social.review WHERE book_id = $1`, id)
		_, _ = pool.Exec(context.Background(), `DELETE FROM catalog.book WHERE id = $1`, id)
	})

	return id
}

// ratingColumns reads the denormalised aggregates off the catalogue row.
func ratingColumns(t *testing.T, pool *pgxpool.Pool, bookID int64) (float64, int) {
	t.Helper()

	var ratingAvg float64
	var reviewCount int
	err := pool.QueryRow(context.Background(), `
		SELECT rating_avg, review_count FROM catalog.book WHERE id = $1`,
		bookID).Scan(&ratingAvg, &reviewCount)
	require.NoError(t, err)

	return ratingAvg, reviewCount
}

// # Aggregation Tests

func TestPostgresRepository_RatingRecompute(t *testing.T) {
	pool := newTestPool(t)
	repo := review.NewRepository(pool)
	ctx := context.Background()

	bookID := seedBook(t, pool)
	firstReader := seedReader(t, pool)
	secondReader := seedReader(t, pool)

	first := &review.Review{BookID: bookID, UserID: firstReader, Rating: 4, Comment: "Loved it."}
	require.NoError(t, repo.Create(ctx, first))

	ratingAvg, reviewCount := ratingColumns(t, pool, bookID)
	assert.Equal(t, 4.0, ratingAvg)
	assert.Equal(t, 1, reviewCount)

	second := &review.Review{BookID: bookID, UserID: secondReader, Rating: 2}
	require.NoError(t, repo.Create(ctx, second))

	// mean(4, 2) = 3
	ratingAvg, reviewCount = ratingColumns(t, pool, bookID)
	assert.Equal(t, 3.0, ratingAvg)
	assert.Equal(t, 2, reviewCount)

	require.NoError(t, repo.Delete(ctx, second.ID))

	ratingAvg, reviewCount = ratingColumns(t, pool, bookID)
	assert.Equal(t, 4.0, ratingAvg)
	assert.Equal(t, 1, reviewCount)

	// Removing the last review zeroes the aggregates rather than leaving
	// a stale mean behind.
	require.NoError(t, repo.Delete(ctx, first.ID))

	ratingAvg, reviewCount = ratingColumns(t, pool, bookID)
	assert.Equal(t, 0.0, ratingAvg)
	assert.Equal(t, 0, reviewCount)
}

func TestPostgresRepository_RatingRoundsHalfUp(t *testing.T) {
	pool := newTestPool(t)
	repo := review.NewRepository(pool)
	ctx := context.Background()

	bookID := seedBook(t, pool)

	for _, rating := range []int{5, 4} {
		reader := seedReader(t, pool)
		entity := &review.Review{BookID: bookID, UserID: reader, Rating: rating}
		require.NoError(t, repo.Create(ctx, entity))
	}

	// mean(5, 4) = 4.5, stored as the rounded value 5.
	ratingAvg, reviewCount := ratingColumns(t, pool, bookID)
	assert.Equal(t, 5.0, ratingAvg)
	assert.Equal(t, 2, reviewCount)
}

func TestPostgresRepository_SecondReviewSameReaderConflicts(t *testing.T) {
	pool := newTestPool(t)
	repo := review.NewRepository(pool)
	ctx := context.Background()

	bookID := seedBook(t, pool)
	reader := seedReader(t, pool)

	require.NoError(t, repo.Create(ctx, &review.Review{BookID: bookID, UserID: reader, Rating: 5}))

	err := repo.Create(ctx, &review.Review{BookID: bookID, UserID: reader, Rating: 1})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The failed insert rolled back; the aggregates still reflect one review.
	ratingAvg, reviewCount := ratingColumns(t, pool, bookID)
	assert.Equal(t, 5.0, ratingAvg)
	assert.Equal(t, 1, reviewCount)
}
