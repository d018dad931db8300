// Package pricing derives order totals from cart lines and the
// selected shipping method. It is the only component allowed to
// produce the figure submitted with an order.
package pricing

import (
	"fmt"

	"kart-checkout/internal/model"
)

// Totals is the derived pricing for a checkout.
type Totals struct {
	ItemsSubtotal float64 `json:"itemsSubtotal"`
	ShippingCost  float64 `json:"shippingCost"`
	OrderTotal    float64 `json:"orderTotal"`
}

// Subtotal returns the sum of unit price times quantity across lines.
func Subtotal(lines []model.CartLine) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return subtotal
}

// Derive combines cart lines with the selected shipping method.
// A nil method contributes zero shipping cost; the caller is
// responsible for blocking submission in that case.
func Derive(lines []model.CartLine, method *model.ShippingMethod) Totals {
	subtotal := Subtotal(lines)

	var shipping float64
	if method != nil {
		shipping = method.Price
	}

	return Totals{
		ItemsSubtotal: subtotal,
		ShippingCost:  shipping,
		OrderTotal:    subtotal + shipping,
	}
}

// FormatAmount renders an amount for two-decimal currency display.
// Rounding happens here and nowhere else.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
