// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package notification

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

// Handler implements the HTTP layer for the notification inbox.
type Handler struct {
	service *Service
}

// NewHandler constructs a new notification [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the owner-scoped inbox endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listInbox)
	router.Patch("/{id}/read", handler.markRead)

	return router
}

// AdminRoutes returns the announcement console, mounted under /admin/notifications.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.adminCreate)
	router.Delete("/{id}", handler.adminDelete)

	return router
}

// # Inbox Endpoints

/*
GET /api/v1/notifications.

Description: Retrieves the authenticated user's inbox, newest first.

Request:
  - page, limit: Pagination query parameters

Response:
  - 200: []Notification: Page of inbox entries with pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listInbox(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	notifications, total, err := handler.service.ListInbox(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, notifications, pagination.NewMeta(params, total))
}

/*
PATCH /api/v1/notifications/{id}/read.

Description: Marks one of the caller's notifications as read. Foreign
notifications answer 404.

Response:
  - 200: Notification: The updated entry
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Missing or foreign notification
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
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

	entity, err := handler.service.MarkRead(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// # Announcement Endpoints

// createRequest carries an admin-authored announcement.
type createRequest struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

/*
POST /api/v1/admin/notifications.

Description: Inserts a notification into a user's inbox. Admin only.

Request:
  - body: createRequest (UserID, Type, Message required)

Response:
  - 201: Notification: The created entry
  - 400: ErrValidation: Missing fields
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) adminCreate(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.AdminCreate(request.Context(), CreateInput{
		UserID:  input.UserID,
		Type:    input.Type,
		Message: input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

/*
DELETE /api/v1/admin/notifications/{id}.

Description: Removes an inbox entry. Admin only.

Response:
  - 204: No Content: Entry removed
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: No entry with this ID
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
