package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"kart-checkout/internal/gateway"
	"kart-checkout/internal/model"

	"github.com/rs/zerolog"
)

// shippingMethodStore implements ShippingMethodStore over the backend's
// shipping-methods catalogue.
type shippingMethodStore struct {
	gw     gateway.Gateway
	logger zerolog.Logger

	mu      sync.Mutex
	methods []model.ShippingMethod
	loading bool
	err     string
}

// NewShippingMethodStore creates a shipping-method store backed by the gateway.
func NewShippingMethodStore(gw gateway.Gateway, logger zerolog.Logger) ShippingMethodStore {
	return &shippingMethodStore{
		gw:     gw,
		logger: logger.With().Str("store", "shipping_method").Logger(),
	}
}

// Fetch loads the available delivery options.
func (s *shippingMethodStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	raw, err := s.gw.Do(ctx, http.MethodGet, "/shipping-methods", nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.logger.Warn().Err(err).Msg("failed to fetch shipping methods")
		return fmt.Errorf("failed to fetch shipping methods: %w", err)
	}

	var methods []model.ShippingMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		s.err = "malformed shipping methods response"
		s.logger.Error().Err(err).Msg("malformed shipping methods response")
		return fmt.Errorf("malformed shipping methods response: %w", err)
	}

	s.methods = methods
	s.logger.Debug().Int("count", len(methods)).Msg("shipping methods fetched")

	return nil
}

// Snapshot returns the last-fetched state.
func (s *shippingMethodStore) Snapshot() ShippingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := make([]model.ShippingMethod, len(s.methods))
	copy(methods, s.methods)

	return ShippingSnapshot{Methods: methods, Loading: s.loading, Err: s.err}
}

// Get looks up a fetched method by id.
func (s *shippingMethodStore) Get(id string) (*model.ShippingMethod, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.methods {
		if s.methods[i].ID == id {
			method := s.methods[i]
			return &method, true
		}
	}
	return nil, false
}
