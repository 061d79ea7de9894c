// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-press/inkwell/internal/platform/request"
	"github.com/inkwell-press/inkwell/internal/platform/respond"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// BookRoutes returns the per-book review endpoints. The router is mounted
// under /books/{id}/reviews, so handlers read the book ID from the parent
// pattern's "id" parameter.
func (handler *Handler) BookRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listForBook)
	router.With(middleware.RequireAuth).Post("/", handler.createReview)

	return router
}

// AdminRoutes returns the moderation console, mounted under /admin/reviews.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.adminList)
	router.Delete("/{reviewID}", handler.adminDelete)

	return router
}

// # Reader Endpoints

/*
GET /api/v1/books/{id}/reviews.

Description: Retrieves a book's reviews, newest first. Public.

Request:
  - page, limit: Pagination query parameters

Response:
  - 200: []Review: Page of reviews with pagination metadata
*/
func (handler *Handler) listForBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListForBook(request.Context(), bookID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params, total))
}

// createReviewRequest carries a reader's verdict.
type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

/*
POST /api/v1/books/{id}/reviews.

Description: Attaches a review to the book and refreshes its rating.

Request:
  - body: createReviewRequest (Rating 1-5, optional comment)

Response:
  - 201: Review: The stored review
  - 400: ErrValidation: Rating out of range
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: No active book with this ID
  - 409: ErrConflict: Reader has already reviewed this book
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.Create(request.Context(), userID, CreateReviewInput{
		BookID:  bookID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

// # Moderation Endpoints

/*
GET /api/v1/admin/reviews.

Description: Retrieves reviews across all books. Admin only.

Request:
  - book_id: int64 (Filter by book)
  - user_id: string (Filter by reviewer)
  - page, limit: Pagination query parameters

Response:
  - 200: []Review: Page of reviews with pagination metadata
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{UserID: query.Get("user_id")}
	if raw := query.Get("book_id"); raw != "" {
		bookID, err := requestutil.ParseNumericID(raw)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.BookID = bookID
	}

	reviews, total, err := handler.service.AdminList(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params, total))
}

/*
DELETE /api/v1/admin/reviews/{reviewID}.

Description: Removes a review and refreshes the book's rating. Admin only.

Response:
  - 204: No Content: Review removed, aggregates recomputed
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: No review with this ID
*/
func (handler *Handler) adminDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AdminDelete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
