// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleReader))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAuthor))
	assert.True(t, sec.RoleAuthor.AtLeast(sec.RoleReader))
	assert.True(t, sec.RoleReader.AtLeast(sec.RoleReader))

	assert.False(t, sec.RoleReader.AtLeast(sec.RoleAuthor))
	assert.False(t, sec.RoleAuthor.AtLeast(sec.RoleAdmin))

	// An unknown role never clears any threshold.
	assert.False(t, sec.UserRole("superuser").AtLeast(sec.RoleReader))
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleReader.IsValid())
	assert.True(t, sec.RoleAuthor.IsValid())
	assert.True(t, sec.RoleAdmin.IsValid())
	assert.False(t, sec.UserRole("superuser").IsValid())
	assert.False(t, sec.UserRole("").IsValid())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, sec.CheckPasswordHash("correct-horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-horse", hash))
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	// Hashing is deterministic and one-way.
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.NotEqual(t, first, sec.HashToken(first))
}

func TestTokenService_RoundTrip(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	service := sec.NewTokenServiceFromKeys(privateKey, "inkwell-test")

	signed, err := service.GenerateAccessToken("user-42", "marta", string(sec.RoleAuthor), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "marta", claims.Username)
	assert.Equal(t, string(sec.RoleAuthor), claims.Role)
	assert.Equal(t, "inkwell-test", claims.Issuer)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	service := sec.NewTokenServiceFromKeys(privateKey, "inkwell-test")

	signed, err := service.GenerateAccessToken("user-42", "marta", string(sec.RoleReader), -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(signed)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	signerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer := sec.NewTokenServiceFromKeys(signerKey, "inkwell-test")
	verifier := sec.NewTokenServiceFromKeys(otherKey, "inkwell-test")

	signed, err := signer.GenerateAccessToken("user-42", "marta", string(sec.RoleReader), time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(signed)
	assert.Error(t, err)
}
