package model

// ShippingMethod is a flat-priced delivery option from the backend
// catalogue. Immutable during a checkout session.
type ShippingMethod struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
