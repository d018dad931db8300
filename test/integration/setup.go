package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"kart-checkout/internal/checkout"
	"kart-checkout/internal/config"
	"kart-checkout/internal/gateway"
	"kart-checkout/internal/handler"
	"kart-checkout/internal/model"
	"kart-checkout/internal/router"
	"kart-checkout/internal/store"

	"github.com/rs/zerolog"
)

// FakeBackend is an in-memory stand-in for the upstream commerce API.
// It implements exactly the endpoints the checkout flow depends on.
type FakeBackend struct {
	Server *httptest.Server

	mu             sync.Mutex
	carts          map[string]model.Cart
	shipping       []model.ShippingMethod
	payments       map[string][]model.UserPaymentMethod
	orders         map[string]model.Order
	nextOrderSeq   int
	nextPaymentSeq int

	// OrderFailure, when set, makes POST /shop-orders answer 409 with
	// this message.
	OrderFailure string

	// LastAuthorization records the Authorization header of the most
	// recent request.
	LastAuthorization string
}

// NewFakeBackend starts a fake commerce backend with seed data for
// user "u1".
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		carts: map[string]model.Cart{
			"u1": {
				ID:     "cart-1",
				UserID: "u1",
				Lines: []model.CartLine{
					{ProductItemID: "p1", ProductName: "Widget", Quantity: 2, UnitPrice: 10.00},
					{ProductItemID: "p2", ProductName: "Gadget", Quantity: 1, UnitPrice: 5.50},
				},
			},
		},
		shipping: []model.ShippingMethod{
			{ID: "sm-1", Name: "Standard", Price: 3.00},
			{ID: "sm-2", Name: "Express", Price: 9.50},
		},
		payments: map[string][]model.UserPaymentMethod{
			"u1": {
				{ID: "pm-1", UserID: "u1", Provider: "visa", MaskedNumber: "**** 4242"},
			},
		},
		orders: make(map[string]model.Order),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/shopping-carts", fb.handleCarts)
	mux.HandleFunc("/shipping-methods", fb.handleShippingMethods)
	mux.HandleFunc("/user-payment-methods", fb.handlePaymentMethods)
	mux.HandleFunc("/shop-orders", fb.handleOrders)
	mux.HandleFunc("/shop-orders/", fb.handleOrderByID)

	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.LastAuthorization = r.Header.Get("Authorization")
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.Server.Close)

	return fb
}

func (fb *FakeBackend) handleCarts(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	userID := r.URL.Query().Get("user_id")
	if cart, ok := fb.carts[userID]; ok {
		writeJSON(w, http.StatusOK, []model.Cart{cart})
		return
	}
	writeJSON(w, http.StatusOK, []model.Cart{})
}

func (fb *FakeBackend) handleShippingMethods(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, http.StatusOK, fb.shipping)
}

func (fb *FakeBackend) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		userID := r.URL.Query().Get("user_id")
		methods := fb.payments[userID]
		if methods == nil {
			methods = []model.UserPaymentMethod{}
		}
		writeJSON(w, http.StatusOK, methods)

	case http.MethodPost:
		var req model.PaymentMethodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
			return
		}

		fb.nextPaymentSeq++
		masked := "**** " + req.CardNumber[max(0, len(req.CardNumber)-4):]
		created := model.UserPaymentMethod{
			ID:           fmt.Sprintf("pm-%d", fb.nextPaymentSeq),
			UserID:       req.UserID,
			Provider:     req.Provider,
			MaskedNumber: masked,
		}
		fb.payments[req.UserID] = append(fb.payments[req.UserID], created)
		writeJSON(w, http.StatusCreated, created)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
	}
}

func (fb *FakeBackend) handleOrders(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		return
	}

	if fb.OrderFailure != "" {
		writeJSON(w, http.StatusConflict, map[string]string{"message": fb.OrderFailure})
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	fb.nextOrderSeq++
	order := model.Order{
		ID:               fmt.Sprintf("order-%d", fb.nextOrderSeq),
		UserID:           req.UserID,
		OrderDate:        req.OrderDate,
		PaymentMethodID:  req.PaymentMethodID,
		ShippingAddress:  req.ShippingAddress,
		ShippingMethodID: req.ShippingMethodID,
		OrderTotal:       req.OrderTotal,
		OrderStatusID:    req.OrderStatusID,
		Lines:            req.Lines,
		CreatedAt:        time.Now().UTC(),
	}
	fb.orders[order.ID] = order
	writeJSON(w, http.StatusCreated, order)
}

func (fb *FakeBackend) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/shop-orders/")
	if order, ok := fb.orders[id]; ok {
		writeJSON(w, http.StatusOK, order)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "order not found"})
}

// SetOrderFailure toggles the backend's rejection of order creation.
func (fb *FakeBackend) SetOrderFailure(message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.OrderFailure = message
}

// Order returns a stored order by id.
func (fb *FakeBackend) Order(id string) (model.Order, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	order, ok := fb.orders[id]
	return order, ok
}

// Authorization returns the Authorization header seen on the most
// recent backend request.
func (fb *FakeBackend) Authorization() string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.LastAuthorization
}

// SetupAPI wires the full service (gateway, stores, flows, handlers,
// router, middleware) against the fake backend and returns the API's
// base URL.
func SetupAPI(t *testing.T, fb *FakeBackend) string {
	t.Helper()

	logger := zerolog.Nop()
	backendCfg := config.BackendConfig{
		BaseURL:        fb.Server.URL,
		RequestTimeout: 5,
		OrderStatusID:  1,
	}

	gw := gateway.New(backendCfg, logger)
	manager := checkout.NewManager(gw, backendCfg.OrderStatusID, logger)
	orderStore := store.NewOrderStore(gw, logger)
	checkoutHandler := handler.NewCheckoutHandler(manager, orderStore, logger)

	api := httptest.NewServer(router.New(checkoutHandler, logger))
	t.Cleanup(api.Close)

	return api.URL
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
