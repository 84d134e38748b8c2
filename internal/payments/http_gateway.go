package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rentalops-backend/internal/logger"
)

// HTTPGateway talks to a card-payment provider's REST API
// (form-encoded requests, bearer-key auth, JSON responses).
type HTTPGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewHTTPGateway(baseURL, secretKey string) *HTTPGateway {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &HTTPGateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	logger.ExternalServiceCall("gateway", "create_intent", "amount_cents", amountCents, "currency", currency)

	intent, err := g.do(ctx, http.MethodPost, "/v1/payment_intents", strings.NewReader(form.Encode()))
	logger.ExternalServiceResult("gateway", "create_intent", err)
	return intent, err
}

func (g *HTTPGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	logger.ExternalServiceCall("gateway", "get_intent", "intent_id", id)

	intent, err := g.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil)
	logger.ExternalServiceResult("gateway", "get_intent", err)
	return intent, err
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body *strings.Reader) (*Intent, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gwErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&gwErr)
		if gwErr.Error.Message != "" {
			return nil, fmt.Errorf("gateway error: %s", gwErr.Error.Message)
		}
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	intent := &Intent{}
	if err := json.NewDecoder(resp.Body).Decode(intent); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return intent, nil
}
