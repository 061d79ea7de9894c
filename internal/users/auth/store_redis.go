// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
)

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
//
// Reset tokens are pure TTL data; Redis expiry does the cleanup for free.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores a reset token with its associated userID and TTL.
func (repository *RedisResetTokenRepository) Set(ctx context.Context, token string, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get retrieves the userID for a given token.
// Returns apperr.NotFound if the token is absent or expired.
func (repository *RedisResetTokenRepository) Get(ctx context.Context, token string) (string, error) {
	key := constants.RedisPrefixResetToken + token

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", apperr.Internal(err)
	}

	return userID, nil
}

// Delete removes the token from Redis after successful use.
func (repository *RedisResetTokenRepository) Delete(ctx context.Context, token string) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
