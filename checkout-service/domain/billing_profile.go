package domain

import "strings"

// BillingAddress is the structured address bundled into method-creation requests
type BillingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingProfile is the billing contact supplied once per checkout session and
// immutable for the session's lifetime
type BillingProfile struct {
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address BillingAddress `json:"address"`
}

// Validate checks the fields the processor requires before method creation
func (b BillingProfile) Validate() error {
	if strings.TrimSpace(b.Email) == "" || !strings.Contains(b.Email, "@") {
		return NewValidationError("billing email is required")
	}
	if strings.TrimSpace(b.Address.Line1) == "" {
		return NewValidationError("billing address line1 is required")
	}
	if strings.TrimSpace(b.Address.City) == "" {
		return NewValidationError("billing address city is required")
	}
	if strings.TrimSpace(b.Address.PostalCode) == "" {
		return NewValidationError("billing address postal code is required")
	}
	if len(strings.TrimSpace(b.Address.Country)) != 2 {
		return NewValidationError("billing address country must be a two-letter code")
	}
	return nil
}
