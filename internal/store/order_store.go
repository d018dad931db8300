package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kart-checkout/internal/gateway"
	"kart-checkout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderStore implements OrderStore over the backend's shop-orders
// collection. It holds no state of its own; the created order's id is
// the only server state the checkout flow ever reads back.
type orderStore struct {
	gw     gateway.Gateway
	logger zerolog.Logger
}

// NewOrderStore creates an order store backed by the gateway.
func NewOrderStore(gw gateway.Gateway, logger zerolog.Logger) OrderStore {
	return &orderStore{
		gw:     gw,
		logger: logger.With().Str("store", "order").Logger(),
	}
}

// Create submits the assembled order. Each attempt carries a fresh
// idempotency key so a backend that honours the header can deduplicate
// submissions racing in from elsewhere (a second tab, say).
func (s *orderStore) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}

	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	raw, err := s.gw.Do(ctx, http.MethodPost, "/shop-orders", req, header)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", req.UserID).
			Float64("order_total", req.OrderTotal).
			Msg("order submission rejected")
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		s.logger.Error().Err(err).Msg("malformed create order response")
		return nil, fmt.Errorf("malformed create order response: %w", err)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("backend returned order without an id")
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", req.UserID).
		Float64("order_total", req.OrderTotal).
		Int("line_count", len(req.Lines)).
		Msg("order created")

	return &order, nil
}

// GetByID fetches an order for the confirmation view.
func (s *orderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	raw, err := s.gw.Do(ctx, http.MethodGet, "/shop-orders/"+id, nil, nil)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			s.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to fetch order")
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	var order model.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("malformed order response: %w", err)
	}

	return &order, nil
}
