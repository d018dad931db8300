package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"kart-checkout/internal/checkout"
	"kart-checkout/internal/model"
	"kart-checkout/internal/store"

	"github.com/rs/zerolog"
)

// CheckoutHandler exposes the checkout flow over HTTP.
type CheckoutHandler struct {
	manager *checkout.Manager
	orders  store.OrderStore
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(manager *checkout.Manager, orders store.OrderStore, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		manager: manager,
		orders:  orders,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// selectionRequest is the body for the two method pickers.
type selectionRequest struct {
	ID string `json:"id"`
}

// submitResponse is returned on successful order submission.
type submitResponse struct {
	RedirectTo string `json:"redirectTo"`
}

// Get handles GET /api/checkout requests. The first call for a user
// dispatches the three initial fetches; the response renders whatever
// has resolved, section by section.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		if err := flow.Reload(r.Context()); err != nil {
			handleFlowError(w, err, h.logger)
			return
		}
	} else {
		flow.Load(r.Context())
	}

	writeJSON(w, http.StatusOK, flow.View())
}

// UpdateAddress handles PUT /api/checkout/address requests.
func (h *CheckoutHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	var form checkout.AddressForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := flow.SetAddress(form); err != nil {
		handleFlowError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, flow.View())
}

// SelectShipping handles PUT /api/checkout/shipping-method requests.
func (h *CheckoutHandler) SelectShipping(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(flow *checkout.Flow, id string) error {
		return flow.SelectShipping(id)
	})
}

// SelectPayment handles PUT /api/checkout/payment-method requests.
func (h *CheckoutHandler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, func(flow *checkout.Flow, id string) error {
		return flow.SelectPayment(id)
	})
}

// applySelection is the shared body of the two pickers.
func (h *CheckoutHandler) applySelection(w http.ResponseWriter, r *http.Request, apply func(*checkout.Flow, string) error) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := apply(flow, req.ID); err != nil {
		handleFlowError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, flow.View())
}

// CreatePaymentMethod handles POST /api/checkout/payment-methods
// requests, the side-modal flow for adding a card mid-checkout.
func (h *CheckoutHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	var req model.PaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	created, err := flow.AddPaymentMethod(r.Context(), &req)
	if err != nil {
		handleFlowError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Submit handles POST /api/checkout/submit requests. On backend
// rejection the flow's view is returned alongside a 502 so the client
// can render the inline banner with every field still in place.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	redirect, err := flow.Submit(r.Context())
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			writeJSON(w, http.StatusBadGateway, flow.View())
			return
		}
		handleFlowError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{RedirectTo: redirect})
}

// Confirmation handles GET /api/checkout/confirmation/{orderID}
// requests for the order-confirmation page.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID := strings.TrimPrefix(r.URL.Path, "/api/checkout/confirmation/")
	if orderID == "" || strings.Contains(orderID, "/") {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	order, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		handleFlowError(w, err, h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// flow resolves the caller's checkout flow from the user_id query
// parameter.
func (h *CheckoutHandler) flow(w http.ResponseWriter, r *http.Request) (*checkout.Flow, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", h.logger)
		return nil, false
	}
	return h.manager.Flow(userID), true
}
