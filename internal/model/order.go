package model

import "time"

// OrderRequest is the payload submitted to the backend on checkout.
// OrderTotal is computed at submission time from the cart lines plus
// the selected shipping method's price; no other component may
// recompute or override it.
type OrderRequest struct {
	UserID           string             `json:"user_id"`
	OrderDate        time.Time          `json:"order_date"`
	PaymentMethodID  string             `json:"payment_method_id"`
	ShippingAddress  string             `json:"shipping_address"`
	ShippingMethodID string             `json:"shipping_method_id"`
	OrderTotal       float64            `json:"order_total"`
	OrderStatusID    int                `json:"order_status_id"`
	Lines            []OrderLineRequest `json:"lines"`
}

// OrderLineRequest is a single order line derived from a cart line.
type OrderLineRequest struct {
	ProductItemID string  `json:"product_item_id"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

// Order is the immutable record the backend returns once an order has
// been created. Its ID is the only piece of server state the checkout
// flow reads back.
type Order struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	OrderDate        time.Time          `json:"order_date"`
	PaymentMethodID  string             `json:"payment_method_id"`
	ShippingAddress  string             `json:"shipping_address"`
	ShippingMethodID string             `json:"shipping_method_id"`
	OrderTotal       float64            `json:"order_total"`
	OrderStatusID    int                `json:"order_status_id"`
	Lines            []OrderLineRequest `json:"lines"`
	CreatedAt        time.Time          `json:"created_at"`
}
