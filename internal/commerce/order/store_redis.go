// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package order

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
)

// RedisIntentClaimRepository implements [IntentClaimRepository] using Redis.
//
// A claim is one key per payment intent holding the owning user's ID.
// GETDEL makes consumption atomic: of two racing completions, exactly one
// reads the value and the other sees nil.
type RedisIntentClaimRepository struct {
	client *redis.Client
}

// NewIntentClaimRepository creates a Redis-backed idempotency claim store.
func NewIntentClaimRepository(client *redis.Client) *RedisIntentClaimRepository {
	return &RedisIntentClaimRepository{client: client}
}

// Set records a fresh claim owned by userID. NX guards against a processor
// handing out the same intent ID twice.
func (repository *RedisIntentClaimRepository) Set(ctx context.Context, intentID, userID string) error {
	key := constants.RedisPrefixPaymentIntent + intentID

	ok, err := repository.client.SetNX(ctx, key, userID, constants.PaymentIntentTTL).Result()
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.Conflict("Payment intent already registered")
	}

	return nil
}

// Consume atomically takes the claim and returns its owner.
func (repository *RedisIntentClaimRepository) Consume(ctx context.Context, intentID string) (string, error) {
	key := constants.RedisPrefixPaymentIntent + intentID

	userID, err := repository.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.DuplicateOrder(intentID)
		}
		return "", apperr.Internal(err)
	}

	return userID, nil
}

// Restore puts a consumed claim back after a failed completion.
func (repository *RedisIntentClaimRepository) Restore(ctx context.Context, intentID, userID string) error {
	key := constants.RedisPrefixPaymentIntent + intentID

	if err := repository.client.Set(ctx, key, userID, constants.PaymentIntentTTL).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
