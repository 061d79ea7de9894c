// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/commerce/order"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
)

func newClaimRepository(t *testing.T) (*order.RedisIntentClaimRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return order.NewIntentClaimRepository(client), server
}

func TestIntentClaim_SetAndConsume(t *testing.T) {
	repository, server := newClaimRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "pi_abc", "user-1"))

	ttl := server.TTL(constants.RedisPrefixPaymentIntent + "pi_abc")
	assert.Equal(t, constants.PaymentIntentTTL, ttl)

	owner, err := repository.Consume(ctx, "pi_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	// Second consumption must lose.
	_, err = repository.Consume(ctx, "pi_abc")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "DUPLICATE_ORDER", appErr.Code)
}

func TestIntentClaim_SetTwiceConflicts(t *testing.T) {
	repository, _ := newClaimRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "pi_abc", "user-1"))

	err := repository.Set(ctx, "pi_abc", "user-2")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The original owner must survive the collision.
	owner, err := repository.Consume(ctx, "pi_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)
}

func TestIntentClaim_Restore(t *testing.T) {
	repository, _ := newClaimRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "pi_abc", "user-1"))

	_, err := repository.Consume(ctx, "pi_abc")
	require.NoError(t, err)

	require.NoError(t, repository.Restore(ctx, "pi_abc", "user-1"))

	owner, err := repository.Consume(ctx, "pi_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)
}

func TestIntentClaim_ExpiredClaimReadsAsDuplicate(t *testing.T) {
	repository, server := newClaimRepository(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "pi_abc", "user-1"))

	server.FastForward(constants.PaymentIntentTTL + 1)

	_, err := repository.Consume(ctx, "pi_abc")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "DUPLICATE_ORDER", appErr.Code)
}
