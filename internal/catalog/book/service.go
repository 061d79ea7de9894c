// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package book

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/blob"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/pointer"
	"github.com/inkwell-press/inkwell/pkg/slug"
)

// coverURLExpiry bounds how long a presigned cover link stays valid.
const coverURLExpiry = 15 * time.Minute

// # Service Layer

// Service orchestrates the business logic for the book catalogue.
// It acts as the primary entry point for discovery and content management.
type Service struct {
	bookRepo  Repository
	blobStore blob.Store // nil when no object store is configured
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
// blobStore may be nil; cover operations then degrade gracefully.
func NewService(bookRepo Repository, blobStore blob.Store, logger *slog.Logger) *Service {
	return &Service{
		bookRepo:  bookRepo,
		blobStore: blobStore,
		logger:    logger,
	}
}

// # Discovery

/*
ListBooks retrieves a paginated and filtered collection of books.

Description: Passes filter criteria directly to the repository layer for
database-level filtering and sorting, then decorates results with
presigned cover links.

Parameters:
  - ctx: context.Context
  - filter: Filter (Genre, search, author, sort)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Book: Slice of matching records
  - int: Total count matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	books, total, err := service.bookRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, entity := range books {
		service.attachCoverURL(ctx, entity)
	}

	return books, total, nil
}

/*
GetBook fetches a single book by its numeric ID.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *Book: The hydrated entity with presigned cover link
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetBook(ctx context.Context, id int64) (*Book, error) {
	entity, err := service.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service.attachCoverURL(ctx, entity)
	return entity, nil
}

/*
GetBookBySlug fetches a single book by its SEO slug.

Parameters:
  - ctx: context.Context
  - slugValue: string

Returns:
  - *Book: The hydrated entity with presigned cover link
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetBookBySlug(ctx context.Context, slugValue string) (*Book, error) {
	entity, err := service.bookRepo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}

	service.attachCoverURL(ctx, entity)
	return entity, nil
}

// # Management

// CreateBookInput carries the attributes for a new catalogue entry.
type CreateBookInput struct {
	Title       string
	Description string
	Genre       Genre
	AuthorID    *string
	AuthorName  string
	PriceCents  int64
}

/*
CreateBook initialises a new catalogue entry.

Description: Performs business validation on the metadata and generates an
SEO-friendly slug before persisting. Both the admin console and the
manuscript publish flow route through here so the two paths cannot drift.

Parameters:
  - ctx: context.Context
  - input: CreateBookInput

Returns:
  - *Book: The persisted entity with its generated ID
  - error: Validation or persistence errors
*/
func (service *Service) CreateBook(ctx context.Context, input CreateBookInput) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 300).
		Required(FieldAuthorName, input.AuthorName).
		Positive(FieldPriceCents, input.PriceCents)

	if !input.Genre.IsValid() {
		validator.Custom(FieldGenre, true, "is not a recognised genre")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity := &Book{
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		Genre:       input.Genre,
		AuthorID:    input.AuthorID,
		AuthorName:  input.AuthorName,
		PriceCents:  input.PriceCents,
	}

	if err := service.bookRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("book_service_create_failed: %w", err)
	}

	service.logger.Info("book_published",
		slog.Int64("book_id", entity.ID),
		slog.String("slug", entity.Slug),
	)

	return entity, nil
}

// UpdateBookInput defines the mutable subset of book attributes.
// Nil pointers leave the existing value untouched.
type UpdateBookInput struct {
	Title       *string
	Description *string
	Genre       *Genre
	AuthorName  *string
	PriceCents  *int64
}

/*
UpdateBook applies a partial set of changes to a catalogue entry.

Description: Title changes regenerate the slug so shared links stay
meaningful. Rating columns are owned by the review aggregation and
cannot be set through this path.

Parameters:
  - ctx: context.Context
  - id: int64
  - input: UpdateBookInput

Returns:
  - *Book: The updated entity
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) UpdateBook(ctx context.Context, id int64, input UpdateBookInput) (*Book, error) {
	entity, err := service.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Title stays conditional: only a provided title regenerates the slug.
	if input.Title != nil {
		entity.Title = *input.Title
		entity.Slug = slug.From(*input.Title)
	}
	entity.Description = pointer.Fallback(input.Description, entity.Description)
	entity.Genre = pointer.Fallback(input.Genre, entity.Genre)
	entity.AuthorName = pointer.Fallback(input.AuthorName, entity.AuthorName)
	entity.PriceCents = pointer.Fallback(input.PriceCents, entity.PriceCents)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, entity.Title).
		MaxLen(FieldTitle, entity.Title, 300).
		Positive(FieldPriceCents, entity.PriceCents)

	if !entity.Genre.IsValid() {
		validator.Custom(FieldGenre, true, "is not a recognised genre")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.bookRepo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("book_service_update_failed: %w", err)
	}

	service.logger.Info("book_updated", slog.Int64("book_id", entity.ID))

	service.attachCoverURL(ctx, entity)
	return entity, nil
}

/*
DeleteBook removes a catalogue entry via soft-deletion.

Description: Past orders keep their line items; the book simply stops
appearing in discovery and can no longer be purchased.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: Not-found or persistence errors
*/
func (service *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := service.bookRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_unlisted", slog.Int64("book_id", id))
	return nil
}

// # Cover Assets

/*
UploadCover streams a cover image to the object store and records its key.

Parameters:
  - ctx: context.Context
  - id: int64
  - reader: io.Reader (Image payload)
  - size: int64
  - contentType: string

Returns:
  - string: The stored object key
  - error: Service-unavailable when no object store is configured
*/
func (service *Service) UploadCover(ctx context.Context, id int64, reader io.Reader, size int64, contentType string) (string, error) {
	if service.blobStore == nil {
		return "", apperr.ServiceUnavailable("Cover storage is not configured")
	}

	// Ensure the book exists before consuming the upload
	if _, err := service.bookRepo.FindByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("covers/%d", id)
	if err := service.blobStore.Put(ctx, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("book_service_cover_upload_failed: %w", err)
	}

	if err := service.bookRepo.SetCoverKey(ctx, id, key); err != nil {
		return "", err
	}

	service.logger.Info("book_cover_uploaded", slog.Int64("book_id", id))
	return key, nil
}

// attachCoverURL populates a short-lived presigned link for the cover, if any.
// Presign failures are logged, not surfaced: a missing cover never breaks browsing.
func (service *Service) attachCoverURL(ctx context.Context, entity *Book) {
	if service.blobStore == nil || entity.CoverKey == "" {
		return
	}

	url, err := service.blobStore.PresignGet(ctx, entity.CoverKey, coverURLExpiry)
	if err != nil {
		service.logger.Warn("book_cover_presign_failed",
			slog.Int64("book_id", entity.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	entity.CoverURL = url
}
