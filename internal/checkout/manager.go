package checkout

import (
	"sync"

	"kart-checkout/internal/gateway"
	"kart-checkout/internal/store"

	"github.com/rs/zerolog"
)

// Manager hands out one Flow per user, creating it with its own set of
// stores on first touch. It replaces what a browser tab would keep as
// in-memory component state; nothing here is durable.
type Manager struct {
	gw       gateway.Gateway
	statusID int
	logger   zerolog.Logger

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewManager creates a flow manager on top of the gateway.
func NewManager(gw gateway.Gateway, statusID int, logger zerolog.Logger) *Manager {
	return &Manager{
		gw:       gw,
		statusID: statusID,
		logger:   logger,
		flows:    make(map[string]*Flow),
	}
}

// Flow returns the user's checkout flow, creating it if needed.
func (m *Manager) Flow(userID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	if flow, ok := m.flows[userID]; ok {
		return flow
	}

	flow := NewFlow(
		userID,
		store.NewCartStore(m.gw, m.logger),
		store.NewShippingMethodStore(m.gw, m.logger),
		store.NewPaymentMethodStore(m.gw, m.logger),
		store.NewOrderStore(m.gw, m.logger),
		m.statusID,
		m.logger,
	)
	m.flows[userID] = flow

	return flow
}

// Release drops a completed flow so the user's next visit starts a
// fresh checkout.
func (m *Manager) Release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, userID)
}
