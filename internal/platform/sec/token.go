// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token of byteLength entropy bytes.
//
// Used for refresh tokens and password-reset tokens. The raw value is handed
// to the client; only its hash is ever persisted server-side.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to read entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Tokens are stored hashed so a database leak does not expose usable
// credentials. SHA-256 (not bcrypt) is sufficient here because the input
// already has full entropy.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
