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

// paymentMethodStore implements PaymentMethodStore over the backend's
// user-payment-methods collection.
type paymentMethodStore struct {
	gw     gateway.Gateway
	logger zerolog.Logger

	mu      sync.Mutex
	methods []model.UserPaymentMethod
	loading bool
	err     string
}

// NewPaymentMethodStore creates a payment-method store backed by the gateway.
func NewPaymentMethodStore(gw gateway.Gateway, logger zerolog.Logger) PaymentMethodStore {
	return &paymentMethodStore{
		gw:     gw,
		logger: logger.With().Str("store", "payment_method").Logger(),
	}
}

// Fetch loads the user's saved payment methods.
func (s *paymentMethodStore) Fetch(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	path := "/user-payment-methods?user_id=" + url.QueryEscape(userID)
	raw, err := s.gw.Do(ctx, http.MethodGet, path, nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to fetch payment methods")
		return fmt.Errorf("failed to fetch payment methods: %w", err)
	}

	var methods []model.UserPaymentMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		s.err = "malformed payment methods response"
		s.logger.Error().Err(err).Str("user_id", userID).Msg("malformed payment methods response")
		return fmt.Errorf("malformed payment methods response: %w", err)
	}

	s.methods = methods
	s.logger.Debug().
		Str("user_id", userID).
		Int("count", len(methods)).
		Msg("payment methods fetched")

	return nil
}

// Create adds a new payment method, then re-fetches the collection so
// the store reflects whatever the backend actually persisted. No
// optimistic local patch; the backend has no way to reconcile one.
func (s *paymentMethodStore) Create(ctx context.Context, req *model.PaymentMethodRequest) (*model.UserPaymentMethod, error) {
	if req == nil {
		return nil, fmt.Errorf("payment method request is nil")
	}
	if req.UserID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "user id is required")
	}
	if req.Provider == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "provider is required")
	}
	if req.CardNumber == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "card number is required")
	}

	raw, err := s.gw.Do(ctx, http.MethodPost, "/user-payment-methods", req, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("failed to create payment method")
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	var created model.UserPaymentMethod
	if err := json.Unmarshal(raw, &created); err != nil {
		s.logger.Error().Err(err).Msg("malformed create payment method response")
		return nil, fmt.Errorf("malformed create payment method response: %w", err)
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("payment_method_id", created.ID).
		Msg("payment method created")

	if err := s.Fetch(ctx, req.UserID); err != nil {
		// The create itself succeeded; the stale collection is the
		// store's problem, not the caller's.
		s.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("re-fetch after create failed")
	}

	return &created, nil
}

// Snapshot returns the last-fetched state.
func (s *paymentMethodStore) Snapshot() PaymentSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := make([]model.UserPaymentMethod, len(s.methods))
	copy(methods, s.methods)

	return PaymentSnapshot{Methods: methods, Loading: s.loading, Err: s.err}
}

// Get looks up a fetched method by id.
func (s *paymentMethodStore) Get(id string) (*model.UserPaymentMethod, bool) {
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
