// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/commerce/payment"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
)

/*
TestClient_CreateIntent verifies the happy path against a stub processor.
*/
func TestClient_CreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/v1/payment_intents", request.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", request.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.EqualValues(t, 2599, payload["amount"])
		assert.Equal(t, "usd", payload["currency"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":            "pi_abc",
			"client_secret": "pi_abc_secret_xyz",
			"amount":        2599,
			"currency":      "usd",
			"status":        "requires_payment_method",
		})
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "sk_test_123")

	intent, err := client.CreateIntent(context.Background(), 2599, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, "pi_abc_secret_xyz", intent.ClientSecret)
	assert.EqualValues(t, 2599, intent.AmountCents)
	assert.False(t, intent.Succeeded())
}

/*
TestClient_GetIntent verifies intent lookups and the Succeeded helper.
*/
func TestClient_GetIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_abc", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"id":     "pi_abc",
			"amount": 2599,
			"status": "succeeded",
		})
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "sk_test_123")

	intent, err := client.GetIntent(context.Background(), "pi_abc")
	require.NoError(t, err)
	assert.True(t, intent.Succeeded())
}

/*
TestClient_ProcessorError verifies that processor failures surface as a
502 PAYMENT_PROVIDER_ERROR with the processor's message attached.
*/
func TestClient_ProcessorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(writer).Encode(map[string]any{
			"error": map[string]any{
				"message": "Your card was declined.",
				"code":    "card_declined",
			},
		})
	}))
	defer server.Close()

	client := payment.NewClient(server.URL, "sk_test_123")

	_, err := client.CreateIntent(context.Background(), 2599, "usd")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "PAYMENT_PROVIDER_ERROR", appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "Your card was declined.")
}

/*
TestClient_ProcessorUnreachable verifies the transport-failure path.
*/
func TestClient_ProcessorUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // deliberately dead endpoint

	client := payment.NewClient(server.URL, "sk_test_123")

	_, err := client.CreateIntent(context.Background(), 100, "usd")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "PAYMENT_PROVIDER_ERROR", appErr.Code)
}
