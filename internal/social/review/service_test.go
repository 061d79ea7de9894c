// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/social/review"
)

// # Test Doubles

type stubCatalog struct {
	books map[int64]*book.Book
}

func (c *stubCatalog) FindByID(_ context.Context, id int64) (*book.Book, error) {
	entity, ok := c.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return entity, nil
}

type stubReviewRepo struct {
	nextID  int64
	reviews map[int64]*review.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{nextID: 1, reviews: make(map[int64]*review.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, entity *review.Review) error {
	for _, existing := range r.reviews {
		if existing.BookID == entity.BookID && existing.UserID == entity.UserID {
			return apperr.Conflict("You have already reviewed this book")
		}
	}
	entity.ID = r.nextID
	r.nextID++
	r.reviews[entity.ID] = entity
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id int64) (*review.Review, error) {
	entity, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return entity, nil
}

func (r *stubReviewRepo) List(_ context.Context, filter review.Filter, _, _ int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, entity := range r.reviews {
		if filter.BookID != 0 && entity.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && entity.UserID != filter.UserID {
			continue
		}
		out = append(out, entity)
	}
	return out, len(out), nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(r.reviews, id)
	return nil
}

func newReviewService(t *testing.T) (*review.Service, *stubReviewRepo) {
	t.Helper()

	repo := newStubReviewRepo()
	catalog := &stubCatalog{books: map[int64]*book.Book{
		1: {ID: 1, Title: "The Quiet Harbour"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return review.NewService(repo, catalog, logger), repo
}

// # Tests

func TestService_Create(t *testing.T) {
	service, repo := newReviewService(t)

	entity, err := service.Create(context.Background(), "user-1", review.CreateReviewInput{
		BookID:  1,
		Rating:  4,
		Comment: "A slow burn, worth it.",
	})
	require.NoError(t, err)

	assert.NotZero(t, entity.ID)
	assert.Equal(t, "user-1", entity.UserID)
	assert.Len(t, repo.reviews, 1)
}

func TestService_Create_RatingOutOfRange(t *testing.T) {
	service, _ := newReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), "user-1", review.CreateReviewInput{
			BookID: 1,
			Rating: rating,
		})
		appErr := apperr.As(err)
		require.NotNil(t, appErr, "rating %d", rating)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestService_Create_UnknownBook(t *testing.T) {
	service, _ := newReviewService(t)

	_, err := service.Create(context.Background(), "user-1", review.CreateReviewInput{
		BookID: 999,
		Rating: 5,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestService_Create_SecondReviewConflicts(t *testing.T) {
	service, _ := newReviewService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, "user-1", review.CreateReviewInput{BookID: 1, Rating: 4})
	require.NoError(t, err)

	_, err = service.Create(ctx, "user-1", review.CreateReviewInput{BookID: 1, Rating: 2})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestService_AdminDelete(t *testing.T) {
	service, repo := newReviewService(t)
	ctx := context.Background()

	entity, err := service.Create(ctx, "user-1", review.CreateReviewInput{BookID: 1, Rating: 4})
	require.NoError(t, err)

	require.NoError(t, service.AdminDelete(ctx, entity.ID))
	assert.Empty(t, repo.reviews)

	err = service.AdminDelete(ctx, entity.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
