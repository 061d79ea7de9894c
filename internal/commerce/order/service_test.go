// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/commerce/order"
	"github.com/inkwell-press/inkwell/internal/commerce/payment"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// # Test Doubles

type stubProvider struct {
	intent *payment.Intent
	err    error
}

func (p *stubProvider) CreateIntent(_ context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	if p.err != nil {
		return nil, p.err
	}
	intent := *p.intent
	intent.AmountCents = amountCents
	intent.Currency = currency
	return &intent, nil
}

func (p *stubProvider) GetIntent(_ context.Context, _ string) (*payment.Intent, error) {
	return p.intent, p.err
}

// stubClaims mirrors the Redis claim semantics in a plain map.
type stubClaims struct {
	claims map[string]string
}

func newStubClaims() *stubClaims {
	return &stubClaims{claims: make(map[string]string)}
}

func (c *stubClaims) Set(_ context.Context, intentID, userID string) error {
	if _, ok := c.claims[intentID]; ok {
		return apperr.Conflict("Payment intent already registered")
	}
	c.claims[intentID] = userID
	return nil
}

func (c *stubClaims) Consume(_ context.Context, intentID string) (string, error) {
	owner, ok := c.claims[intentID]
	if !ok {
		return "", apperr.DuplicateOrder(intentID)
	}
	delete(c.claims, intentID)
	return owner, nil
}

func (c *stubClaims) Restore(_ context.Context, intentID, userID string) error {
	c.claims[intentID] = userID
	return nil
}

type stubCatalog struct {
	items map[int64]book.PurchaseItem
}

func (c *stubCatalog) FindForPurchase(_ context.Context, ids []int64) ([]book.PurchaseItem, error) {
	found := make([]book.PurchaseItem, 0, len(ids))
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := c.items[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

type stubOrderRepo struct {
	nextID     int64
	orders     map[int64]*order.Order
	createErr  error
	lastStatus order.Status
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{nextID: 1, orders: make(map[int64]*order.Order)}
}

func (r *stubOrderRepo) CreateCompleted(_ context.Context, entity *order.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	entity.ID = r.nextID
	entity.Status = order.StatusCompleted
	r.nextID++
	r.orders[entity.ID] = entity
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*order.Order, error) {
	entity, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	return entity, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter order.Filter, _, _ int) ([]*order.Order, int, error) {
	var out []*order.Order
	for _, entity := range r.orders {
		if filter.UserID != "" && entity.UserID != filter.UserID {
			continue
		}
		out = append(out, entity)
	}
	return out, len(out), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status) error {
	entity, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("Order")
	}
	entity.Status = status
	r.lastStatus = status
	return nil
}

type stubNotifier struct {
	types []string
}

func (n *stubNotifier) Notify(_ context.Context, _, notifType, _ string) error {
	n.types = append(n.types, notifType)
	return nil
}

// # Fixture

type orderFixture struct {
	service  *order.Service
	repo     *stubOrderRepo
	claims   *stubClaims
	provider *stubProvider
	notifier *stubNotifier
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	repo := newStubOrderRepo()
	claims := newStubClaims()
	notifier := &stubNotifier{}
	provider := &stubProvider{intent: &payment.Intent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Status:       "succeeded",
	}}
	catalog := &stubCatalog{items: map[int64]book.PurchaseItem{
		1: {ID: 1, Title: "The Quiet Harbour", PriceCents: 1299},
		2: {ID: 2, Title: "Saltwater Letters", PriceCents: 899},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &orderFixture{
		service:  order.NewService(repo, claims, provider, catalog, notifier, logger),
		repo:     repo,
		claims:   claims,
		provider: provider,
		notifier: notifier,
	}
}

// # Checkout Tests

func TestService_CreateIntent(t *testing.T) {
	fixture := newOrderFixture(t)

	intent, err := fixture.service.CreateIntent(context.Background(), "user-1", 2198)
	require.NoError(t, err)

	assert.Equal(t, "pi_test_1", intent.ID)
	assert.Equal(t, int64(2198), intent.AmountCents)
	assert.Equal(t, "usd", intent.Currency)
	assert.Equal(t, "user-1", fixture.claims.claims["pi_test_1"], "claim should record the buyer")
}

func TestService_CreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	fixture := newOrderFixture(t)

	_, err := fixture.service.CreateIntent(context.Background(), "user-1", 0)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, fixture.claims.claims)
}

func TestService_CompleteOrder(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 2198)
	require.NoError(t, err)

	entity, err := fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1, 2},
		TotalCents: 2198,
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusCompleted, entity.Status)
	require.Len(t, entity.Lines, 2)
	assert.Equal(t, "The Quiet Harbour", entity.Lines[0].Title)
	assert.Equal(t, int64(1299), entity.Lines[0].PriceCents)
	assert.Empty(t, fixture.claims.claims, "claim should be consumed")
	assert.Equal(t, []string{"order_completed"}, fixture.notifier.types)
}

func TestService_CompleteOrder_DuplicateIntent(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	input := order.CompleteOrderInput{IntentID: "pi_test_1", BookIDs: []int64{1}, TotalCents: 1299}

	_, err = fixture.service.CompleteOrder(ctx, "user-1", input)
	require.NoError(t, err)

	_, err = fixture.service.CompleteOrder(ctx, "user-1", input)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "DUPLICATE_ORDER", appErr.Code)
	assert.Len(t, fixture.repo.orders, 1, "replay must not create a second order")
}

func TestService_CompleteOrder_UnknownBookKeepsClaim(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	_, err = fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1, 999},
		TotalCents: 1299,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, fixture.claims.claims, "pi_test_1", "bad basket must not burn the claim")
}

func TestService_CompleteOrder_TotalMismatchKeepsClaim(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	// Catalogue price for book 1 is 1299; the payload claims less.
	_, err = fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 99,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, order.FieldTotal, appErr.Details[0].Field)
	assert.Contains(t, fixture.claims.claims, "pi_test_1", "a mispriced basket must not burn the claim")
	assert.Empty(t, fixture.repo.orders)
}

func TestService_CompleteOrder_UnpaidIntentKeepsClaim(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	fixture.provider.intent.Status = "requires_payment_method"

	_, err = fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, fixture.claims.claims, "pi_test_1", "an uncaptured payment must not burn the claim")
	assert.Empty(t, fixture.repo.orders)
}

func TestService_CompleteOrder_ProviderOutagePassesThrough(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	fixture.provider.err = apperr.PaymentProvider("processor timeout", errors.New("timeout"))

	_, err = fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "PAYMENT_PROVIDER_ERROR", appErr.Code)
	assert.Contains(t, fixture.claims.claims, "pi_test_1")
}

func TestService_CompleteOrder_ForeignIntent(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	_, err = fixture.service.CompleteOrder(ctx, "user-2", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.Equal(t, "user-1", fixture.claims.claims["pi_test_1"], "claim should return to its owner")
}

func TestService_CompleteOrder_InsertFailureRestoresClaim(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	fixture.repo.createErr = errors.New("connection reset")

	_, err = fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})
	require.Error(t, err)

	assert.Contains(t, fixture.claims.claims, "pi_test_1", "buyer must be able to retry")
}

// # Order History Tests

func TestService_Get_ScopesToOwner(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	entity, err := fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})
	require.NoError(t, err)

	_, err = fixture.service.Get(ctx, "user-2", sec.RoleReader, entity.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code, "foreign orders must not leak existence")

	found, err := fixture.service.Get(ctx, "user-2", sec.RoleAdmin, entity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ID, found.ID)
}

// # Fulfilment Console Tests

func TestService_AdminUpdateStatus(t *testing.T) {
	fixture := newOrderFixture(t)
	ctx := context.Background()

	_, err := fixture.service.CreateIntent(ctx, "user-1", 1299)
	require.NoError(t, err)

	entity, err := fixture.service.CompleteOrder(ctx, "user-1", order.CompleteOrderInput{
		IntentID:   "pi_test_1",
		BookIDs:    []int64{1},
		TotalCents: 1299,
	})
	require.NoError(t, err)

	updated, err := fixture.service.AdminUpdateStatus(ctx, entity.ID, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
}

func TestService_AdminUpdateStatus_RejectsUnassignable(t *testing.T) {
	fixture := newOrderFixture(t)

	for _, status := range []order.Status{"teleported", order.StatusPending} {
		_, err := fixture.service.AdminUpdateStatus(context.Background(), 1, status)
		appErr := apperr.As(err)
		require.NotNil(t, appErr, "status %q", status)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestService_AdminUpdateStatus_UnknownOrder(t *testing.T) {
	fixture := newOrderFixture(t)

	_, err := fixture.service.AdminUpdateStatus(context.Background(), 404, order.StatusShipped)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
