package model

// UserPaymentMethod is a saved, masked payment credential reference
// belonging to a user.
type UserPaymentMethod struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Provider     string `json:"provider"`
	MaskedNumber string `json:"masked_number"`
}

// PaymentMethodRequest is the payload for adding a new payment method.
// The backend stores the card and returns it with the number masked.
type PaymentMethodRequest struct {
	UserID     string `json:"user_id"`
	Provider   string `json:"provider"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}
