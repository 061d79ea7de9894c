// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review

import (
	"context"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
)

// # Collaborator Ports

// BookCatalog confirms a book exists before a review attaches to it.
// The book package's postgres repository satisfies it.
type BookCatalog interface {
	FindByID(ctx context.Context, id int64) (*book.Book, error)
}

// # Service Layer

// Service orchestrates review submission and moderation.
type Service struct {
	reviewRepo Repository
	catalog    BookCatalog
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its collaborator dependencies.
func NewService(reviewRepo Repository, catalog BookCatalog, logger *slog.Logger) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		catalog:    catalog,
		logger:     logger,
	}
}

// CreateReviewInput carries a reader's verdict.
type CreateReviewInput struct {
	BookID  int64
	Rating  int
	Comment string
}

/*
Create attaches a review to a book and refreshes its rating.

Description: Validates the rating bounds, confirms the book exists, and
hands the write to the store, which recomputes the catalogue aggregates in
the same transaction. One review per reader per book; a second attempt
answers CONFLICT.

Parameters:
  - ctx: context.Context
  - userID: string (The reviewer)
  - input: CreateReviewInput

Returns:
  - *Review: The stored review
  - error: Validation, not-found, conflict, or persistence errors
*/
func (service *Service) Create(ctx context.Context, userID string, input CreateReviewInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, RatingMin, RatingMax).
		MaxLen(FieldComment, input.Comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.catalog.FindByID(ctx, input.BookID); err != nil {
		return nil, err
	}

	entity := &Review{
		BookID:  input.BookID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	if err := service.reviewRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", entity.ID),
		slog.Int64("book_id", entity.BookID),
		slog.Int("rating", entity.Rating),
	)

	return entity, nil
}

/*
ListForBook retrieves a book's reviews, newest first. Public.

Parameters:
  - ctx: context.Context
  - bookID: int64
  - limit, offset: Pagination window

Returns:
  - []*Review: Page of reviews
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListForBook(ctx context.Context, bookID int64, limit, offset int) ([]*Review, int, error) {
	return service.reviewRepo.List(ctx, Filter{BookID: bookID}, limit, offset)
}

// # Moderation

/*
AdminList retrieves reviews across all books for the moderation console.

Parameters:
  - ctx: context.Context
  - filter: Filter (Book and reviewer criteria)
  - limit, offset: Pagination window

Returns:
  - []*Review: Page of reviews
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) AdminList(ctx context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	return service.reviewRepo.List(ctx, filter, limit, offset)
}

/*
AdminDelete removes a review and refreshes the book's rating.

Description: The store recomputes the catalogue aggregates in the delete
transaction, so the book's rating never reflects a review that is gone.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: NotFound or persistence errors
*/
func (service *Service) AdminDelete(ctx context.Context, id int64) error {
	if err := service.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", id))
	return nil
}
