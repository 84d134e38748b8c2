// Package payments wraps the card-payment gateway behind an interface with
// a real HTTP implementation and a mock for development, following the same
// real-vs-mock split the rest of the outbound integrations use.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
)

// Intent statuses as reported by the gateway.
const (
	IntentStatusRequiresPayment = "requires_payment_method"
	IntentStatusProcessing      = "processing"
	IntentStatusSucceeded       = "succeeded"
	IntentStatusFailed          = "failed"
)

// Intent is one gateway payment intent.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// Webhook event types this system consumes.
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

// WebhookEvent is the subset of a gateway event the payment service needs.
type WebhookEvent struct {
	Type          string
	IntentID      string
	FailureReason string
}

// ParseWebhook decodes a gateway webhook body into a WebhookEvent.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var raw struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID               string `json:"id"`
				LastPaymentError *struct {
					Message string `json:"message"`
				} `json:"last_payment_error"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	if raw.Type == "" || raw.Data.Object.ID == "" {
		return nil, fmt.Errorf("webhook payload missing type or intent id")
	}

	ev := &WebhookEvent{Type: raw.Type, IntentID: raw.Data.Object.ID}
	if raw.Data.Object.LastPaymentError != nil {
		ev.FailureReason = raw.Data.Object.LastPaymentError.Message
	}
	return ev, nil
}
