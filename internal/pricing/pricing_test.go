package pricing

import (
	"testing"

	"kart-checkout/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name             string
		lines            []model.CartLine
		method           *model.ShippingMethod
		expectedSubtotal float64
		expectedShipping float64
		expectedTotal    float64
	}{
		{
			name: "two lines with shipping",
			lines: []model.CartLine{
				{ProductItemID: "p1", Quantity: 2, UnitPrice: 10.00},
				{ProductItemID: "p2", Quantity: 1, UnitPrice: 5.50},
			},
			method:           &model.ShippingMethod{ID: "sm-1", Name: "Standard", Price: 3.00},
			expectedSubtotal: 25.50,
			expectedShipping: 3.00,
			expectedTotal:    28.50,
		},
		{
			name:             "empty cart",
			lines:            nil,
			method:           &model.ShippingMethod{ID: "sm-1", Price: 3.00},
			expectedSubtotal: 0,
			expectedShipping: 3.00,
			expectedTotal:    3.00,
		},
		{
			name: "no shipping method selected defaults to zero",
			lines: []model.CartLine{
				{ProductItemID: "p1", Quantity: 3, UnitPrice: 4.25},
			},
			method:           nil,
			expectedSubtotal: 12.75,
			expectedShipping: 0,
			expectedTotal:    12.75,
		},
		{
			name:             "empty cart and no method",
			lines:            []model.CartLine{},
			method:           nil,
			expectedSubtotal: 0,
			expectedShipping: 0,
			expectedTotal:    0,
		},
		{
			name: "single line large quantity",
			lines: []model.CartLine{
				{ProductItemID: "p1", Quantity: 100, UnitPrice: 0.99},
			},
			method:           &model.ShippingMethod{Price: 0},
			expectedSubtotal: 99.00,
			expectedShipping: 0,
			expectedTotal:    99.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Derive(tt.lines, tt.method)
			assert.InDelta(t, tt.expectedSubtotal, totals.ItemsSubtotal, 1e-9)
			assert.InDelta(t, tt.expectedShipping, totals.ShippingCost, 1e-9)
			assert.InDelta(t, tt.expectedTotal, totals.OrderTotal, 1e-9)
		})
	}
}

func TestSubtotal(t *testing.T) {
	lines := []model.CartLine{
		{Quantity: 2, UnitPrice: 1.10},
		{Quantity: 5, UnitPrice: 2.00},
	}
	assert.InDelta(t, 12.20, Subtotal(lines), 1e-9)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "28.50", FormatAmount(28.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "3.00", FormatAmount(3))
}
