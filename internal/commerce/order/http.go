// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package order provides the HTTP interface for checkout and order history.

# Routing Strategy

  - Authenticated (v1): Checkout and personal order history.
  - Restricted (v1): Fulfilment console endpoints requiring the Admin role.

Completion is idempotent per payment intent: replaying the same intent
returns 409 DUPLICATE_ORDER instead of a second order.
*/
package order

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

// Handler implements the HTTP layer for checkout and fulfilment.
type Handler struct {
	service *Service
}

// NewHandler constructs a new order [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the buyer-facing checkout endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/intent", handler.createIntent)
	router.Post("/", handler.completeOrder)
	router.Get("/", handler.listOwn)
	router.Get("/{id}", handler.getOrder)

	return router
}

// AdminRoutes returns the fulfilment console, mounted under /admin/orders.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.adminList)
	router.Patch("/{id}", handler.adminUpdateStatus)

	return router
}

// # Checkout Endpoints

// intentRequest carries the checkout amount in minor currency units.
type intentRequest struct {
	Amount int64 `json:"amount"`
}

/*
POST /api/v1/orders/intent.

Description: Opens a payment intent with the processor and returns the
client secret the storefront needs to collect payment.

Request:
  - body: intentRequest (Amount in cents, > 0)

Response:
  - 201: payment.Intent: Intent ID, client secret, amount, currency
  - 400: ErrValidation: Non-positive amount
  - 401: ErrUnauthorized: Authentication required
  - 502: ErrPaymentProvider: Processor unreachable or rejecting
*/
func (handler *Handler) createIntent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input intentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	intent, err := handler.service.CreateIntent(request.Context(), userID, input.Amount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, intent)
}

// completeRequest carries the storefront's completion payload.
type completeRequest struct {
	IntentID string  `json:"intent_id"`
	BookIDs  []int64 `json:"book_ids"`
	Total    int64   `json:"total"`
}

/*
POST /api/v1/orders.

Description: Completes checkout for a paid intent. The total must match
the catalogue prices of the basket and the processor must report the
intent as succeeded. Exactly one order is created per intent; a replay
returns 409 DUPLICATE_ORDER.

Request:
  - body: completeRequest (IntentID, BookIDs non-empty, Total > 0)

Response:
  - 201: Order: The completed order with frozen line items
  - 400: ErrValidation: Malformed payload, unknown books, mismatched total, or uncaptured payment
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Intent opened by a different account
  - 409: ErrDuplicateOrder: Intent already consumed
  - 502: ErrPaymentProvider: Processor unreachable
*/
func (handler *Handler) completeOrder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input completeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.CompleteOrder(request.Context(), userID, CompleteOrderInput{
		IntentID:   input.IntentID,
		BookIDs:    input.BookIDs,
		TotalCents: input.Total,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

// # Order History Endpoints

/*
GET /api/v1/orders.

Description: Retrieves the authenticated buyer's order history, newest first.

Request:
  - page, limit: Pagination query parameters

Response:
  - 200: []Order: Page of orders with pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	orders, total, err := handler.service.ListOwn(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, orders, pagination.NewMeta(params, total))
}

/*
GET /api/v1/orders/{id}.

Description: Retrieves a single order. Buyers can only read their own;
orders belonging to other accounts answer 404.

Response:
  - 200: Order: The hydrated order
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Missing or foreign order
*/
func (handler *Handler) getOrder(writer http.ResponseWriter, request *http.Request) {
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

// # Fulfilment Console Endpoints

/*
GET /api/v1/admin/orders.

Description: Retrieves orders across all buyers. Admin only.

Request:
  - user_id: string (Filter by buyer)
  - status: string (Filter by fulfilment status)
  - page, limit: Pagination query parameters

Response:
  - 200: []Order: Page of orders with pagination metadata
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		UserID: query.Get("user_id"),
		Status: Status(query.Get("status")),
	}

	if filter.Status != "" && !filter.Status.IsValid() {
		respond.Error(writer, request, validate.RequiredError(FieldStatus, "is not a recognised status"))
		return
	}

	orders, total, err := handler.service.AdminList(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, orders, pagination.NewMeta(params, total))
}

// statusRequest carries the fulfilment status assignment.
type statusRequest struct {
	Status string `json:"status"`
}

/*
PATCH /api/v1/admin/orders/{id}.

Description: Overwrites an order's fulfilment status. Admin only.

Request:
  - body: statusRequest (processing, shipped, completed, cancelled)

Response:
  - 200: Order: The updated order
  - 400: ErrValidation: Unknown or unassignable status
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: No order with this ID
*/
func (handler *Handler) adminUpdateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.NumericID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entity, err := handler.service.AdminUpdateStatus(request.Context(), id, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}
