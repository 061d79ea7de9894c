// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/commerce/payment"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
)

// # Collaborator Ports

// BookCatalog resolves purchased book IDs to priced line items.
// The book package's postgres repository satisfies it.
type BookCatalog interface {
	FindForPurchase(ctx context.Context, ids []int64) ([]book.PurchaseItem, error)
}

// Notifier drops an order confirmation into the buyer's inbox.
type Notifier interface {
	Notify(ctx context.Context, userID, notifType, message string) error
}

// # Service Layer

// Service orchestrates the checkout and fulfilment workflow.
type Service struct {
	orderRepo Repository
	claims    IntentClaimRepository
	provider  payment.Provider
	catalog   BookCatalog
	notifier  Notifier
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its collaborator dependencies.
func NewService(
	orderRepo Repository,
	claims IntentClaimRepository,
	provider payment.Provider,
	catalog BookCatalog,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		claims:    claims,
		provider:  provider,
		catalog:   catalog,
		notifier:  notifier,
		logger:    logger,
	}
}

// # Checkout

/*
CreateIntent reserves a payment intent with the processor.

Description: Validates the amount, asks the processor for an intent, and
registers the idempotency claim that the later completion will consume.
Processor failures surface as 502 PAYMENT_PROVIDER_ERROR with no retry;
the storefront simply asks again.

Parameters:
  - ctx: context.Context
  - userID: string (The buyer)
  - amountCents: int64

Returns:
  - *payment.Intent: Intent ID and client secret for the storefront
  - error: Validation or processor errors
*/
func (service *Service) CreateIntent(ctx context.Context, userID string, amountCents int64) (*payment.Intent, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldAmount, amountCents)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	intent, err := service.provider.CreateIntent(ctx, amountCents, constants.Currency)
	if err != nil {
		return nil, err
	}

	if err := service.claims.Set(ctx, intent.ID, userID); err != nil {
		return nil, fmt.Errorf("order_service_claim_set_failed: %w", err)
	}

	service.logger.Info("payment_intent_created",
		slog.String("intent_id", intent.ID),
		slog.String("user_id", userID),
		slog.Int64("amount_cents", amountCents),
	)

	return intent, nil
}

// CompleteOrderInput carries the storefront's completion payload.
type CompleteOrderInput struct {
	IntentID   string
	BookIDs    []int64
	TotalCents int64
}

/*
CompleteOrder turns a paid intent into exactly one order.

Description: The Redis claim is the idempotency barrier: consuming it
atomically means a double-submit loses with DUPLICATE_ORDER before any
database work happens. Book resolution, total reconciliation, and the
processor-side intent check all run before the claim is touched so bad
input never burns the claim. The submitted total must equal the sum of
catalogue prices, and the intent must report succeeded at the processor.
If the insert itself fails, the claim is restored so the buyer can retry.

Parameters:
  - ctx: context.Context
  - userID: string (The buyer; must own the claim)
  - input: CompleteOrderInput

Returns:
  - *Order: The completed order with frozen line items
  - error: Validation, duplicate, ownership, or persistence errors
*/
func (service *Service) CompleteOrder(ctx context.Context, userID string, input CompleteOrderInput) (*Order, error) {
	validator := &validate.Validator{}
	validator.Required(FieldIntentID, input.IntentID).
		NonEmptyIDs(FieldBookIDs, input.BookIDs).
		Positive(FieldTotal, input.TotalCents)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Resolve the basket first; an unknown book must not consume the claim.
	items, err := service.catalog.FindForPurchase(ctx, input.BookIDs)
	if err != nil {
		return nil, fmt.Errorf("order_service_catalog_lookup_failed: %w", err)
	}
	if len(items) != len(uniqueIDs(input.BookIDs)) {
		return nil, apperr.ValidationError("Basket contains unknown books", apperr.FieldError{
			Field:   FieldBookIDs,
			Message: "one or more books do not exist or are unlisted",
		})
	}

	// The stored total is derived from catalogue prices, never taken from
	// the payload on faith.
	basketTotal := basketTotalCents(items)
	if input.TotalCents != basketTotal {
		return nil, apperr.ValidationError("Order total does not match the basket", apperr.FieldError{
			Field:   FieldTotal,
			Message: fmt.Sprintf("expected %d for the submitted books, got %d", basketTotal, input.TotalCents),
		})
	}

	// The processor is the authority on whether money actually moved.
	intent, err := service.provider.GetIntent(ctx, input.IntentID)
	if err != nil {
		return nil, err
	}
	if !intent.Succeeded() {
		return nil, apperr.ValidationError("Payment has not been captured", apperr.FieldError{
			Field:   FieldIntentID,
			Message: fmt.Sprintf("payment intent is %s, not succeeded", intent.Status),
		})
	}

	// Atomic take: of two racing completions, exactly one passes this line.
	owner, err := service.claims.Consume(ctx, input.IntentID)
	if err != nil {
		return nil, err
	}

	if owner != userID {
		// Not the buyer who opened the intent. Put the claim back.
		_ = service.claims.Restore(ctx, input.IntentID, owner)
		return nil, apperr.Forbidden("Payment intent belongs to another account")
	}

	entity := &Order{
		UserID:     userID,
		IntentID:   input.IntentID,
		TotalCents: input.TotalCents,
		Currency:   constants.Currency,
		Lines:      linesFromItems(items),
	}

	if err := service.orderRepo.CreateCompleted(ctx, entity); err != nil {
		// The unique constraint on intent_id is the database backstop behind
		// the Redis claim. Anything else leaves a retry path open.
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "CONFLICT" {
			return nil, apperr.DuplicateOrder(input.IntentID)
		}
		_ = service.claims.Restore(ctx, input.IntentID, userID)
		return nil, err
	}

	service.logger.Info("order_completed",
		slog.Int64("order_id", entity.ID),
		slog.String("intent_id", input.IntentID),
		slog.String("user_id", userID),
		slog.Int64("total_cents", input.TotalCents),
	)

	if service.notifier != nil {
		err := service.notifier.Notify(ctx, userID,
			"order_completed",
			fmt.Sprintf("Your order #%d for %d book(s) is confirmed.", entity.ID, len(entity.Lines)),
		)
		if err != nil {
			service.logger.Warn("order_notify_failed",
				slog.Int64("order_id", entity.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return entity, nil
}

// # Order History

/*
ListOwn retrieves the caller's order history, newest first.

Parameters:
  - ctx: context.Context
  - userID: string
  - limit, offset: Pagination window

Returns:
  - []*Order: Page of orders with lines
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListOwn(ctx context.Context, userID string, limit, offset int) ([]*Order, int, error) {
	return service.orderRepo.List(ctx, Filter{UserID: userID}, limit, offset)
}

/*
Get retrieves one order. Buyers see only their own; admins see all.

Parameters:
  - ctx: context.Context
  - actorID: string
  - actorRole: sec.UserRole
  - id: int64

Returns:
  - *Order: The hydrated order
  - error: NotFound for missing rows and foreign buyers
*/
func (service *Service) Get(ctx context.Context, actorID string, actorRole sec.UserRole, id int64) (*Order, error) {
	entity, err := service.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.UserID != actorID && !actorRole.AtLeast(sec.RoleAdmin) {
		return nil, apperr.NotFound("Order")
	}

	return entity, nil
}

// # Fulfilment Console

/*
AdminList retrieves orders across all buyers for the fulfilment console.

Parameters:
  - ctx: context.Context
  - filter: Filter (Buyer and status criteria)
  - limit, offset: Pagination window

Returns:
  - []*Order: Page of orders
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) AdminList(ctx context.Context, filter Filter, limit, offset int) ([]*Order, int, error) {
	return service.orderRepo.List(ctx, filter, limit, offset)
}

/*
AdminUpdateStatus overwrites an order's fulfilment status.

Description: The status must be in the assignable set; pending only exists
inside the checkout transaction and cannot be set by hand.

Parameters:
  - ctx: context.Context
  - id: int64
  - status: Status

Returns:
  - *Order: The updated order
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) AdminUpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	if !status.AdminAssignable() {
		return nil, apperr.ValidationError("Unknown status", apperr.FieldError{
			Field:   FieldStatus,
			Message: "must be one of: processing, shipped, completed, cancelled",
		})
	}

	if err := service.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	service.logger.Info("order_status_updated",
		slog.Int64("order_id", id),
		slog.String("status", string(status)),
	)

	return service.orderRepo.FindByID(ctx, id)
}

// # Helpers

// uniqueIDs deduplicates the basket so a doubled ID cannot defeat the
// existence check.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// basketTotalCents sums the catalogue prices of the resolved basket.
func basketTotalCents(items []book.PurchaseItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents
	}
	return total
}

// linesFromItems freezes catalogue prices into order lines.
func linesFromItems(items []book.PurchaseItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			BookID:     item.ID,
			Title:      item.Title,
			PriceCents: item.PriceCents,
		})
	}
	return lines
}
