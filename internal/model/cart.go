package model

// Cart represents a user's shopping cart as returned by the backend.
// It is read at checkout and never mutated by this service.
type Cart struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Lines  []CartLine `json:"lines"`
}

// CartLine is a single line item with its product joined at read time.
type CartLine struct {
	ProductItemID string  `json:"product_item_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}
