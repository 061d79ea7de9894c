// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package auth_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

func newResetRepo(t *testing.T) (*auth.RedisResetTokenRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewResetTokenRepository(client), server
}

func TestResetTokenRepository_SetGetDelete(t *testing.T) {
	repository, server := newResetRepo(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "tok-1", "user-42", auth.ResetTokenTTL))
	assert.Equal(t, auth.ResetTokenTTL, server.TTL(constants.RedisPrefixResetToken+"tok-1"))

	userID, err := repository.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	require.NoError(t, repository.Delete(ctx, "tok-1"))

	_, err = repository.Get(ctx, "tok-1")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestResetTokenRepository_ExpiredTokenReadsAsMissing(t *testing.T) {
	repository, server := newResetRepo(t)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "tok-1", "user-42", auth.ResetTokenTTL))
	server.FastForward(auth.ResetTokenTTL + 1)

	_, err := repository.Get(ctx, "tok-1")
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
