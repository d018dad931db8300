package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"kart-checkout/internal/gateway"
	"kart-checkout/internal/model"

	"github.com/rs/zerolog"
)

// cartStore implements CartStore over the backend's shopping-carts
// collection.
type cartStore struct {
	gw     gateway.Gateway
	logger zerolog.Logger

	mu      sync.Mutex
	cart    *model.Cart
	loading bool
	err     string
}

// NewCartStore creates a cart store backed by the gateway.
func NewCartStore(gw gateway.Gateway, logger zerolog.Logger) CartStore {
	return &cartStore{
		gw:     gw,
		logger: logger.With().Str("store", "cart").Logger(),
	}
}

// Fetch loads the user's cart. The backend exposes carts as a filtered
// collection; a user without a cart resolves to an empty one rather
// than an error.
func (s *cartStore) Fetch(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	path := "/shopping-carts?user_id=" + url.QueryEscape(userID)
	raw, err := s.gw.Do(ctx, http.MethodGet, path, nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to fetch cart")
		return fmt.Errorf("failed to fetch cart: %w", err)
	}

	var carts []model.Cart
	if err := json.Unmarshal(raw, &carts); err != nil {
		s.err = "malformed cart response"
		s.logger.Error().Err(err).Str("user_id", userID).Msg("malformed cart response")
		return fmt.Errorf("malformed cart response: %w", err)
	}

	if len(carts) == 0 {
		s.cart = &model.Cart{UserID: userID}
	} else {
		s.cart = &carts[0]
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int("line_count", len(s.cart.Lines)).
		Msg("cart fetched")

	return nil
}

// Snapshot returns the last-fetched state.
func (s *cartStore) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartSnapshot{Cart: s.cart, Loading: s.loading, Err: s.err}
}
