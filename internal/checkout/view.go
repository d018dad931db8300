package checkout

import (
	"kart-checkout/internal/model"
	"kart-checkout/internal/pricing"
)

// CartSection is the cart as the page renders it.
type CartSection struct {
	Lines   []model.CartLine `json:"lines"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
}

// ShippingSection is the shipping-method picker.
type ShippingSection struct {
	Methods    []model.ShippingMethod `json:"methods"`
	SelectedID string                 `json:"selectedId,omitempty"`
	Loading    bool                   `json:"loading"`
	Error      string                 `json:"error,omitempty"`
}

// PaymentSection is the payment-method picker.
type PaymentSection struct {
	Methods    []model.UserPaymentMethod `json:"methods"`
	SelectedID string                    `json:"selectedId,omitempty"`
	Loading    bool                      `json:"loading"`
	Error      string                    `json:"error,omitempty"`
}

// View is the aggregated checkout page state. Sections carry their own
// errors so one failed fetch leaves the rest of the page interactive.
type View struct {
	State        State           `json:"state"`
	Address      AddressForm     `json:"address"`
	Cart         CartSection     `json:"cart"`
	Shipping     ShippingSection `json:"shipping"`
	Payment      PaymentSection  `json:"payment"`
	Totals       pricing.Totals  `json:"totals"`
	DisplayTotal string          `json:"displayTotal"`
	CanSubmit    bool            `json:"canSubmit"`
	SubmitError  string          `json:"submitError,omitempty"`
	RedirectTo   string          `json:"redirectTo,omitempty"`
}
