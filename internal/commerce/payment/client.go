// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package payment integrates the external card-payment processor.

Checkout is intent-based: the API asks the processor for a payment intent,
hands its client secret to the storefront, and later verifies the intent
when the order is completed. The processor is the source of truth for
whether money actually moved.

# Failure Semantics

Any transport or processor-side failure surfaces as a 502
PAYMENT_PROVIDER_ERROR. The processor's message is passed through so
support can correlate with the processor's dashboard.
*/
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
)

// requestTimeout bounds a single processor round-trip.
const requestTimeout = 10 * time.Second

// # Domain Entities

// Intent mirrors the processor's payment-intent resource.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Succeeded reports whether the processor has captured the funds.
func (intent *Intent) Succeeded() bool {
	return intent.Status == "succeeded"
}

// # Provider Contract

// Provider is the processor-facing contract the commerce services consume.
// Tests substitute a stub; production wires the HTTP [Client].
type Provider interface {
	// CreateIntent reserves a payment intent for the given amount.
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)

	// GetIntent fetches the current state of an intent by ID.
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
}

// # HTTP Client

// Client calls the payment processor's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a processor client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// CreateIntent reserves a payment intent for the given amount.
func (client *Client) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	payload := map[string]any{
		"amount":   amountCents,
		"currency": currency,
	}

	intent := &Intent{}
	if err := client.doJSON(ctx, http.MethodPost, "/v1/payment_intents", payload, intent); err != nil {
		return nil, err
	}

	return intent, nil
}

// GetIntent fetches the current state of an intent by ID.
func (client *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	intent := &Intent{}
	path := fmt.Sprintf("/v1/payment_intents/%s", intentID)

	if err := client.doJSON(ctx, http.MethodGet, path, nil, intent); err != nil {
		return nil, err
	}

	return intent, nil
}

// doJSON performs one authenticated round-trip against the processor.
func (client *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("payment_client_encode_failed: %w", err)
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("payment_client_request_failed: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.PaymentProvider("processor unreachable", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		var errBody struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		_ = json.NewDecoder(response.Body).Decode(&errBody)

		message := errBody.Error.Message
		if message == "" {
			message = response.Status
		}

		return apperr.PaymentProvider(message, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return apperr.PaymentProvider("malformed processor response", err)
	}

	return nil
}
