package checkout

import "strings"

// AddressForm is the shipping-address form exactly as the user entered
// it. Only required-field presence is checked; no format or postal
// lookup validation happens on this side.
type AddressForm struct {
	FullName   string `json:"fullName,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether all required fields are present.
func (a AddressForm) Complete() bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// Flatten joins the entered fields into the single address string the
// backend expects on an order.
func (a AddressForm) Flatten() string {
	parts := make([]string, 0, 7)
	for _, part := range []string{a.FullName, a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
