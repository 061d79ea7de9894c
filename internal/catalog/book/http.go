// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package book provides the HTTP interface for catalogue discovery and management.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /books).
  - Restricted (v1): Mutative endpoints requiring the Admin role (POST, PATCH, DELETE).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// maxCoverBytes caps a single cover upload at 8 MiB.
const maxCoverBytes = 8 << 20

// # Handler Implementation

// Handler implements the HTTP layer for catalogue discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public discovery endpoints.
//
// The review router is mounted under /{id}/reviews so the review handlers
// can read the book ID from the shared path parameter. A nil router skips
// the mount.
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/by-slug/{slug}", handler.getBookBySlug)

	if reviews != nil {
		router.Mount("/{id}/reviews", reviews)
	}

	return router
}

// AdminRoutes returns the management surface, mounted under /admin/books.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.createBook)
	router.Patch("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)
	router.Put("/{id}/cover", handler.uploadCover)

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/books.

Description: Retrieves a paginated list of books from the catalogue.

Request:
  - q: string (Full-text search over title and description)
  - genre: string (Shelf filter)
  - author_id: string (Filter by publishing account)
  - sort: string (newest, price_asc, price_desc, rating)
  - page, limit: Pagination query parameters

Response:
  - 200: []Book: Page of books with pagination metadata
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Search:   query.Get("q"),
		Genre:    Genre(query.Get("genre")),
		AuthorID: query.Get("author_id"),
		Sort:     query.Get("sort"),
	}

	if filter.Genre != "" && !filter.Genre.IsValid() {
		respond.Error(writer, request, apperr.ValidationError("Unknown genre", apperr.FieldError{
			Field:   FieldGenre,
			Message: "is not a recognised genre",
		}))
		return
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(params, total))
}

/*
GET /api/v1/books/{id}.

Description: Retrieves a single book by its numeric identifier.

Response:
  - 200: Book: The hydrated entity
  - 404: ErrNotFound: No active book with this ID
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.GetBook(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
GET /api/v1/books/by-slug/{slug}.

Description: Retrieves a single book by its SEO slug.

Response:
  - 200: Book: The hydrated entity
  - 404: ErrNotFound: No active book with this slug
*/
func (handler *Handler) getBookBySlug(writer http.ResponseWriter, request *http.Request) {
	slugValue := chi.URLParam(request, "slug")
	if slugValue == "" {
		respond.Error(writer, request, apperr.NotFound("Book"))
		return
	}

	entity, err := handler.service.GetBookBySlug(request.Context(), slugValue)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// # Management Endpoints

// bookRequest is the shared payload shape for create and update operations.
type bookRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	AuthorID    *string `json:"author_id"`
	AuthorName  *string `json:"author_name"`
	PriceCents  *int64  `json:"price_cents"`
}

/*
POST /api/v1/admin/books.

Description: Creates a catalogue entry directly, bypassing the manuscript
workflow. Used for backlist imports and titles published off-platform.

Request:
  - body: bookRequest (Title, Genre, AuthorName, PriceCents required)

Response:
  - 201: Book: The created entry
  - 400: ErrValidation: Missing or malformed attributes
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateBookInput{AuthorID: input.AuthorID}
	if input.Title != nil {
		create.Title = *input.Title
	}
	if input.Description != nil {
		create.Description = *input.Description
	}
	if input.Genre != nil {
		create.Genre = Genre(*input.Genre)
	}
	if input.AuthorName != nil {
		create.AuthorName = *input.AuthorName
	}
	if input.PriceCents != nil {
		create.PriceCents = *input.PriceCents
	}

	entity, err := handler.service.CreateBook(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
PATCH /api/v1/admin/books/{id}.

Description: Applies partial updates to a catalogue entry.

Request:
  - body: bookRequest (All fields optional)

Response:
  - 200: Book: The updated entry
  - 400: ErrValidation: Malformed attributes
  - 404: ErrNotFound: No active book with this ID
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	update := UpdateBookInput{
		Title:       input.Title,
		Description: input.Description,
		AuthorName:  input.AuthorName,
		PriceCents:  input.PriceCents,
	}
	if input.Genre != nil {
		genre := Genre(*input.Genre)
		update.Genre = &genre
	}

	entity, err := handler.service.UpdateBook(request.Context(), id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /api/v1/admin/books/{id}.

Description: Soft-deletes a catalogue entry. Past orders keep their lines.

Response:
  - 204: No Content: Book unlisted
  - 404: ErrNotFound: No active book with this ID
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/admin/books/{id}/cover.

Description: Streams a cover image into the object store and records its key.

Request:
  - body: Raw image payload (Content-Type honoured, 8 MiB cap)

Response:
  - 200: {cover_key}: The stored object key
  - 404: ErrNotFound: No active book with this ID
  - 503: ErrServiceUnavailable: Object storage not configured
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType := request.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body := http.MaxBytesReader(writer, request.Body, maxCoverBytes)
	defer body.Close()

	key, err := handler.service.UploadCover(request.Context(), id, body, request.ContentLength, contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"cover_key": key})
}
