// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package book_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/pkg/pointer"
)

// # Test Doubles

// stubBookRepo is an in-memory Repository honoring soft-delete visibility.
type stubBookRepo struct {
	nextID int64
	books  map[int64]*book.Book
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{nextID: 1, books: make(map[int64]*book.Book)}
}

func (repo *stubBookRepo) List(_ context.Context, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	result := make([]*book.Book, 0, len(repo.books))
	for _, entity := range repo.books {
		if entity.DeletedAt == nil {
			copied := *entity
			result = append(result, &copied)
		}
	}
	return result, len(result), nil
}

func (repo *stubBookRepo) FindByID(_ context.Context, id int64) (*book.Book, error) {
	entity, ok := repo.books[id]
	if !ok || entity.DeletedAt != nil {
		return nil, apperr.NotFound("Book")
	}
	copied := *entity
	return &copied, nil
}

func (repo *stubBookRepo) FindBySlug(_ context.Context, slugValue string) (*book.Book, error) {
	for _, entity := range repo.books {
		if entity.Slug == slugValue && entity.DeletedAt == nil {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (repo *stubBookRepo) FindForPurchase(_ context.Context, ids []int64) ([]book.PurchaseItem, error) {
	items := make([]book.PurchaseItem, 0, len(ids))
	for _, id := range ids {
		if entity, ok := repo.books[id]; ok && entity.DeletedAt == nil {
			items = append(items, book.PurchaseItem{ID: entity.ID, Title: entity.Title, PriceCents: entity.PriceCents})
		}
	}
	return items, nil
}

func (repo *stubBookRepo) Create(_ context.Context, entity *book.Book) error {
	entity.ID = repo.nextID
	repo.nextID++
	copied := *entity
	repo.books[entity.ID] = &copied
	return nil
}

func (repo *stubBookRepo) Update(_ context.Context, entity *book.Book) error {
	if _, ok := repo.books[entity.ID]; !ok {
		return apperr.NotFound("Book")
	}
	copied := *entity
	repo.books[entity.ID] = &copied
	return nil
}

func (repo *stubBookRepo) SetCoverKey(_ context.Context, id int64, key string) error {
	entity, ok := repo.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	entity.CoverKey = key
	return nil
}

func (repo *stubBookRepo) SoftDelete(_ context.Context, id int64) error {
	entity, ok := repo.books[id]
	if !ok || entity.DeletedAt != nil {
		return apperr.NotFound("Book")
	}
	now := time.Now()
	entity.DeletedAt = &now
	return nil
}

// stubBlobStore records uploads and presigns deterministic URLs.
type stubBlobStore struct {
	objects map[string][]byte
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{objects: make(map[string][]byte)}
}

func (store *stubBlobStore) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	payload, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	store.objects[key] = payload
	return nil
}

func (store *stubBlobStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := store.objects[key]; !ok {
		return "", fmt.Errorf("no such object: %s", key)
	}
	return "https://cdn.test/" + key + "?sig=abc", nil
}

func (store *stubBlobStore) Delete(_ context.Context, key string) error {
	delete(store.objects, key)
	return nil
}

func newBookService(repo *stubBookRepo, blobStore *stubBlobStore) *book.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if blobStore == nil {
		return book.NewService(repo, nil, logger)
	}
	return book.NewService(repo, blobStore, logger)
}

func seedBook(t *testing.T, service *book.Service) *book.Book {
	t.Helper()

	entity, err := service.CreateBook(context.Background(), book.CreateBookInput{
		Title:       "The Quiet Harbour",
		Description: "A coastal family saga.",
		Genre:       book.GenreFiction,
		AuthorName:  "M. Ellison",
		PriceCents:  1299,
	})
	require.NoError(t, err)
	return entity
}

// # Management

func TestService_CreateBook(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)

	entity := seedBook(t, service)

	assert.Equal(t, int64(1), entity.ID)
	assert.Equal(t, "the-quiet-harbour", entity.Slug)
	assert.Equal(t, book.GenreFiction, entity.Genre)
}

func TestService_CreateBook_RejectsInvalidInput(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)

	testCases := []struct {
		name  string
		input book.CreateBookInput
	}{
		{name: "missing title", input: book.CreateBookInput{AuthorName: "A", Genre: book.GenreFiction, PriceCents: 100}},
		{name: "zero price", input: book.CreateBookInput{Title: "T", AuthorName: "A", Genre: book.GenreFiction, PriceCents: 0}},
		{name: "negative price", input: book.CreateBookInput{Title: "T", AuthorName: "A", Genre: book.GenreFiction, PriceCents: -5}},
		{name: "unknown genre", input: book.CreateBookInput{Title: "T", AuthorName: "A", Genre: "cookbook", PriceCents: 100}},
		{name: "oversized title", input: book.CreateBookInput{Title: strings.Repeat("x", 301), AuthorName: "A", Genre: book.GenreFiction, PriceCents: 100}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.CreateBook(context.Background(), testCase.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestService_UpdateBook_AppliesDeltas(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)
	entity := seedBook(t, service)

	updated, err := service.UpdateBook(context.Background(), entity.ID, book.UpdateBookInput{
		PriceCents: pointer.To(int64(999)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(999), updated.PriceCents)
	assert.Equal(t, entity.Title, updated.Title, "untouched fields keep their value")
	assert.Equal(t, entity.Slug, updated.Slug)
}

func TestService_UpdateBook_TitleChangeRegeneratesSlug(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)
	entity := seedBook(t, service)

	updated, err := service.UpdateBook(context.Background(), entity.ID, book.UpdateBookInput{
		Title: pointer.To("Saltwater Letters"),
	})

	require.NoError(t, err)
	assert.Equal(t, "saltwater-letters", updated.Slug)

	found, err := service.GetBookBySlug(context.Background(), "saltwater-letters")
	require.NoError(t, err)
	assert.Equal(t, entity.ID, found.ID)
}

func TestService_UpdateBook_ValidatesMergedState(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)
	entity := seedBook(t, service)

	_, err := service.UpdateBook(context.Background(), entity.ID, book.UpdateBookInput{
		PriceCents: pointer.To(int64(-100)),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// The rejected delta must not leak into storage.
	current, err := service.GetBook(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1299), current.PriceCents)
}

func TestService_DeleteBook_HidesFromDiscovery(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)
	entity := seedBook(t, service)

	require.NoError(t, service.DeleteBook(context.Background(), entity.ID))

	_, err := service.GetBook(context.Background(), entity.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

// # Cover Assets

func TestService_UploadCover(t *testing.T) {
	repo := newStubBookRepo()
	blobStore := newStubBlobStore()
	service := newBookService(repo, blobStore)
	entity := seedBook(t, service)

	key, err := service.UploadCover(context.Background(), entity.ID, strings.NewReader("png-bytes"), 9, "image/png")

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("covers/%d", entity.ID), key)
	assert.Equal(t, []byte("png-bytes"), blobStore.objects[key])

	// Reads now carry a presigned cover link.
	hydrated, err := service.GetBook(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Contains(t, hydrated.CoverURL, "https://cdn.test/covers/")
}

func TestService_UploadCover_WithoutStoreIsUnavailable(t *testing.T) {
	service := newBookService(newStubBookRepo(), nil)
	entity := seedBook(t, service)

	_, err := service.UploadCover(context.Background(), entity.ID, strings.NewReader("png-bytes"), 9, "image/png")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appErr.Code)
}

func TestService_UploadCover_UnknownBook(t *testing.T) {
	service := newBookService(newStubBookRepo(), newStubBlobStore())

	_, err := service.UploadCover(context.Background(), 404, strings.NewReader("png-bytes"), 9, "image/png")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
