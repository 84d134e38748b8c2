package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway keeps intents in memory for development and tests. Webhook
// delivery is simulated by calling SettleIntent from test or demo code.
type MockGateway struct {
	mu      sync.Mutex
	intents map[string]*Intent
}

func NewMockGateway() *MockGateway {
	return &MockGateway{intents: make(map[string]*Intent)}
}

func (g *MockGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := "pi_mock_" + uuid.NewString()
	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		AmountCents:  amountCents,
		Currency:     currency,
		Status:       IntentStatusRequiresPayment,
	}
	g.intents[id] = intent

	copy := *intent
	return &copy, nil
}

func (g *MockGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent: %s", id)
	}
	copy := *intent
	return &copy, nil
}

// SettleIntent flips a stored intent to a terminal status, standing in for
// the provider processing the card.
func (g *MockGateway) SettleIntent(id, status string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return fmt.Errorf("no such intent: %s", id)
	}
	intent.Status = status
	return nil
}
