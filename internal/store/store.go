package store

import (
	"context"

	"kart-checkout/internal/model"
)

// Stores are thin per-session caches over backend collections. Each
// fetch records the last result plus a loading flag and an error
// string; stores never cross-reference each other — combining their
// outputs is the checkout flow's job alone.

// CartSnapshot is the last-observed state of the cart store.
type CartSnapshot struct {
	Cart    *model.Cart
	Loading bool
	Err     string
}

// CartStore loads the user's shopping cart.
type CartStore interface {
	// Fetch loads the cart for the given user and records the outcome.
	Fetch(ctx context.Context, userID string) error

	// Snapshot returns the last-fetched state.
	Snapshot() CartSnapshot
}

// ShippingSnapshot is the last-observed state of the shipping catalogue.
type ShippingSnapshot struct {
	Methods []model.ShippingMethod
	Loading bool
	Err     string
}

// ShippingMethodStore loads the delivery-option catalogue.
type ShippingMethodStore interface {
	Fetch(ctx context.Context) error
	Snapshot() ShippingSnapshot

	// Get looks up a fetched method by id.
	Get(id string) (*model.ShippingMethod, bool)
}

// PaymentSnapshot is the last-observed state of the saved payment methods.
type PaymentSnapshot struct {
	Methods []model.UserPaymentMethod
	Loading bool
	Err     string
}

// PaymentMethodStore loads and creates the user's saved payment methods.
type PaymentMethodStore interface {
	Fetch(ctx context.Context, userID string) error
	Snapshot() PaymentSnapshot
	Get(id string) (*model.UserPaymentMethod, bool)

	// Create adds a new payment method and then re-fetches the whole
	// collection rather than patching it locally.
	Create(ctx context.Context, req *model.PaymentMethodRequest) (*model.UserPaymentMethod, error)
}

// OrderStore submits orders and reads them back for confirmation.
type OrderStore interface {
	// Create submits the assembled order exactly once per call.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID fetches an order for the confirmation view. Returns
	// (nil, nil) when the backend reports it does not exist.
	GetByID(ctx context.Context, id string) (*model.Order, error)
}
