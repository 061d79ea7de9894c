// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
)

// stubVerifier resolves a fixed set of tokens to claims without touching RSA keys.
type stubVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (verifier *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	claims, ok := verifier.tokens[tokenStr]
	if !ok {
		return nil, errors.New("token is malformed")
	}
	return claims, nil
}

func newVerifier() *stubVerifier {
	return &stubVerifier{tokens: map[string]*sec.AuthClaims{
		"reader-token": {UserID: "11111111-1111-1111-1111-111111111111", Username: "marta", Role: string(sec.RoleReader)},
		"author-token": {UserID: "22222222-2222-2222-2222-222222222222", Username: "jonas", Role: string(sec.RoleAuthor)},
		"admin-token":  {UserID: "33333333-3333-3333-3333-333333333333", Username: "root", Role: string(sec.RoleAdmin)},
	}}
}

// echoUser terminates the chain and reports which identity (if any) reached it.
func echoUser() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := middleware.GetUser(request.Context())
		if claims == nil {
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte("anonymous"))
			return
		}
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(claims.Username))
	})
}

func perform(t *testing.T, handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeErrorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Code
}

func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(echoUser())

	recorder := perform(t, handler, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

func TestAuthenticate_InjectsClaims(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(echoUser())

	recorder := perform(t, handler, "Bearer reader-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "marta", recorder.Body.String())
}

func TestAuthenticate_RejectsMalformedHeader(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(echoUser())

	for _, header := range []string{"reader-token", "Basic reader-token", "Bearer a b"} {
		recorder := perform(t, handler, header)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
		assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, recorder))
	}
}

func TestAuthenticate_RejectsUnknownToken(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(echoUser())

	recorder := perform(t, handler, "Bearer forged-token")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, recorder))
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(middleware.RequireAuth(echoUser()))

	recorder := perform(t, handler, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, recorder))
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(middleware.RequireAuth(echoUser()))

	recorder := perform(t, handler, "Bearer author-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "jonas", recorder.Body.String())
}

func TestRequireRole_EnforcesHierarchy(t *testing.T) {
	testCases := []struct {
		name       string
		required   sec.UserRole
		token      string
		wantStatus int
	}{
		{name: "reader meets reader", required: sec.RoleReader, token: "reader-token", wantStatus: http.StatusOK},
		{name: "reader below author", required: sec.RoleAuthor, token: "reader-token", wantStatus: http.StatusForbidden},
		{name: "author meets author", required: sec.RoleAuthor, token: "author-token", wantStatus: http.StatusOK},
		{name: "author below admin", required: sec.RoleAdmin, token: "author-token", wantStatus: http.StatusForbidden},
		{name: "admin meets everything", required: sec.RoleReader, token: "admin-token", wantStatus: http.StatusOK},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := middleware.Authenticate(newVerifier())(
				middleware.RequireRole(testCase.required)(echoUser()),
			)

			recorder := perform(t, handler, "Bearer "+testCase.token)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			if testCase.wantStatus == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeErrorCode(t, recorder))
			}
		})
	}
}

func TestRequireRole_BlocksAnonymous(t *testing.T) {
	handler := middleware.Authenticate(newVerifier())(
		middleware.RequireRole(sec.RoleAdmin)(echoUser()),
	)

	recorder := perform(t, handler, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
