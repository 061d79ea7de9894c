// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package manuscript provides the HTTP interface for the editorial pipeline.

# Routing Strategy

  - Author desk: Requires the Author role. Authors only ever see their own work.
  - Editorial console: Requires the Admin role, mounted under /admin/manuscripts.
*/
package manuscript

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

// # Handler Implementation

// Handler implements the HTTP layer for the editorial pipeline.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manuscript [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the author desk surface. Requires [sec.RoleAuthor].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAuthor))

	router.Get("/", handler.listOwn)
	router.Post("/", handler.createDraft)
	router.Get("/{id}", handler.getManuscript)
	router.Patch("/{id}", handler.updateDraft)
	router.Delete("/{id}", handler.deleteDraft)
	router.Post("/{id}/submit", handler.submit)

	return router
}

// AdminRoutes returns the editorial console, mounted under /admin/manuscripts.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listQueue)
	router.Post("/{id}/review", handler.startReview)
	router.Post("/{id}/decision", handler.decide)
	router.Post("/{id}/publish", handler.publish)

	return router
}

// parseStatus normalises a status query value. "pending" survives as a
// legacy alias for submitted.
func parseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", nil
	}
	if raw == "pending" {
		return StatusSubmitted, nil
	}

	status := Status(raw)
	if !status.IsValid() {
		return "", apperr.ValidationError("Unknown status", apperr.FieldError{
			Field:   FieldStatus,
			Message: "is not a recognised manuscript status",
		})
	}
	return status, nil
}

// # Author Desk Endpoints

// draftRequest is the payload shape for draft create and update operations.
type draftRequest struct {
	Title      string `json:"title"`
	Synopsis   string `json:"synopsis"`
	Genre      string `json:"genre"`
	Content    string `json:"content"`
	PriceCents int64  `json:"price_cents"`
}

func (input draftRequest) toInput() DraftInput {
	return DraftInput{
		Title:      input.Title,
		Synopsis:   input.Synopsis,
		Genre:      input.Genre,
		Content:    input.Content,
		PriceCents: input.PriceCents,
	}
}

/*
GET /api/v1/manuscripts.

Description: Lists the authenticated author's manuscripts.

Request:
  - status: string (Optional state filter; "pending" aliases submitted)
  - page, limit: Pagination query parameters

Response:
  - 200: []Manuscript: Page of manuscripts, content omitted
  - 403: ErrForbidden: Author role required
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := parseStatus(request.URL.Query().Get("status"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	manuscripts, total, err := handler.service.ListOwn(request.Context(), userID, status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, manuscripts, pagination.NewMeta(params, total))
}

/*
POST /api/v1/manuscripts.

Description: Opens a new draft on the author's desk.

Request:
  - body: draftRequest (Title, Genre, PriceCents required)

Response:
  - 201: Manuscript: The created draft
  - 400: ErrValidation: Missing or malformed attributes
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input draftRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.CreateDraft(request.Context(), userID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
GET /api/v1/manuscripts/{id}.

Description: Retrieves one manuscript with its full content. Owner only;
admins may read through the same path.

Response:
  - 200: Manuscript: The hydrated entity
  - 404: ErrNotFound: Missing, withdrawn, or not yours
*/
func (handler *Handler) getManuscript(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Get(request.Context(), claims.UserID, sec.UserRole(claims.Role), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
PATCH /api/v1/manuscripts/{id}.

Description: Replaces the content of an editable manuscript. Only drafts
and revision-requested manuscripts accept edits.

Request:
  - body: draftRequest

Response:
  - 200: Manuscript: The updated draft
  - 404: ErrNotFound: Missing or not yours
  - 400: ErrValidation: Manuscript is frozen in its current state
*/
func (handler *Handler) updateDraft(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input draftRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.UpdateDraft(request.Context(), userID, id, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /api/v1/manuscripts/{id}.

Description: Withdraws an unsubmitted manuscript from the desk.

Response:
  - 204: No Content: Draft withdrawn
  - 404: ErrNotFound: Missing or not yours
  - 400: ErrValidation: Manuscript already entered the editorial queue
*/
func (handler *Handler) deleteDraft(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDraft(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/manuscripts/{id}/submit.

Description: Hands the manuscript to the editorial queue and freezes it.

Response:
  - 200: Manuscript: The submitted entity
  - 404: ErrNotFound: Missing or not yours
  - 400: ErrValidation: Illegal transition from the current state
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Submit(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// # Editorial Console Endpoints

/*
GET /api/v1/admin/manuscripts.

Description: Lists the editorial queue across all authors.

Request:
  - status: string (Optional state filter; "pending" aliases submitted)
  - author_id: string (Optional author filter)
  - page, limit: Pagination query parameters

Response:
  - 200: []Manuscript: Page of manuscripts
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listQueue(writer http.ResponseWriter, request *http.Request) {
	status, err := parseStatus(request.URL.Query().Get("status"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{
		Status:   status,
		AuthorID: request.URL.Query().Get("author_id"),
	}

	manuscripts, total, err := handler.service.ListQueue(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, manuscripts, pagination.NewMeta(params, total))
}

/*
POST /api/v1/admin/manuscripts/{id}/review.

Description: Claims a submitted manuscript for review. Exactly one editor
wins a concurrent claim.

Response:
  - 200: Manuscript: The claimed entity
  - 400: ErrValidation: Manuscript is not in the submitted state
*/
func (handler *Handler) startReview(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.StartReview(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// decisionRequest carries the editorial verdict payload.
type decisionRequest struct {
	Decision     string `json:"decision"`
	FeedbackNote string `json:"feedback_note"`
}

/*
POST /api/v1/admin/manuscripts/{id}/decision.

Description: Records the verdict on an in-review manuscript and notifies
the author.

Request:
  - body: decisionRequest (Decision: accepted|rejected|revision_requested)

Response:
  - 200: Manuscript: The decided entity
  - 400: ErrValidation: Unknown decision value
  - 400: ErrValidation: Manuscript is not in review
*/
func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input decisionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.Decide(request.Context(), id, Status(input.Decision), input.FeedbackNote)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
POST /api/v1/admin/manuscripts/{id}/publish.

Description: Materialises an accepted manuscript into a live catalogue book.

Response:
  - 201: Book: The freshly listed catalogue entry
  - 400: ErrValidation: Manuscript is not accepted
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.service.Publish(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, published)
}
