// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package contact

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

// Handler implements the HTTP layer for contact submissions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new contact [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public submission endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)

	return router
}

// AdminRoutes returns the support console, mounted under /admin/contacts.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.adminList)
	router.Delete("/{id}", handler.adminDelete)

	return router
}

// submitRequest carries the public form's fields.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

/*
POST /api/v1/contact.

Description: Records a contact form submission. Public; abuse control comes
from the global rate limiter.

Request:
  - body: submitRequest (All fields required)

Response:
  - 201: Contact: The stored submission
  - 400: ErrValidation: Missing or malformed fields
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.Submit(request.Context(), SubmitInput{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
GET /api/v1/admin/contacts.

Description: Retrieves submissions, newest first. Admin only.

Request:
  - page, limit: Pagination query parameters

Response:
  - 200: []Contact: Page of submissions with pagination metadata
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	contacts, total, err := handler.service.AdminList(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, contacts, pagination.NewMeta(params, total))
}

/*
DELETE /api/v1/admin/contacts/{id}.

Description: Removes a handled submission. Admin only.

Response:
  - 204: No Content: Submission removed
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: No submission with this ID
*/
func (handler *Handler) adminDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
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
