package model

import "fmt"

// APIError represents a normalised failure from the upstream backend.
// Every non-2xx response and every network failure surfaces as one of
// these; Message is always safe to show to the user.
type APIError struct {
	StatusCode int    `json:"status,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeMissingAddress     = "MISSING_ADDRESS"
	ErrCodeMissingShipping    = "MISSING_SHIPPING_METHOD"
	ErrCodeMissingPayment     = "MISSING_PAYMENT_METHOD"
	ErrCodeUnknownShipping    = "UNKNOWN_SHIPPING_METHOD"
	ErrCodeUnknownPayment     = "UNKNOWN_PAYMENT_METHOD"
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodeCheckoutComplete   = "CHECKOUT_COMPLETE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrMissingAddress     = NewDomainError(ErrCodeMissingAddress, "Shipping address is incomplete")
	ErrMissingShipping    = NewDomainError(ErrCodeMissingShipping, "A shipping method must be selected")
	ErrMissingPayment     = NewDomainError(ErrCodeMissingPayment, "A payment method must be selected")
	ErrUnknownShipping    = NewDomainError(ErrCodeUnknownShipping, "Selected shipping method does not exist")
	ErrUnknownPayment     = NewDomainError(ErrCodeUnknownPayment, "Selected payment method does not exist")
	ErrSubmissionInFlight = NewDomainError(ErrCodeSubmissionInFlight, "An order submission is already in flight")
	ErrCheckoutComplete   = NewDomainError(ErrCodeCheckoutComplete, "Checkout has already completed")
)
