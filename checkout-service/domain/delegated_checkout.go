package domain

import (
	"context"
	"strings"

	"github.com/draftea/checkout-gateway/shared/models"
)

// DelegatedCheckoutOptions parameterizes a provider-owned checkout flow.
// Passed by value; immutable once launched.
type DelegatedCheckoutOptions struct {
	Amount         models.Money `json:"amount"` // minor units, must be positive
	MerchantName   string       `json:"merchant_name"`
	Description    string       `json:"description,omitempty"`
	PrefillContact string       `json:"prefill_contact,omitempty"`
	PrefillEmail   string       `json:"prefill_email,omitempty"`
}

// Validate fails fast before any network activity
func (o DelegatedCheckoutOptions) Validate() error {
	if !o.Amount.IsPositive() {
		return NewValidationError("amount must be positive")
	}
	if o.Amount.Currency == "" {
		return NewValidationError("currency is required")
	}
	if strings.TrimSpace(o.MerchantName) == "" {
		return NewValidationError("merchant name is required")
	}
	return nil
}

// DelegatedSuccess is the provider's success callback payload
type DelegatedSuccess struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// DelegatedFailure is the provider's failure callback payload
type DelegatedFailure struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DelegatedCallbacks is the single callback registration a session holds with
// the delegated client. Exactly one of the two fires per launch.
type DelegatedCallbacks struct {
	OnSuccess func(ctx context.Context, result DelegatedSuccess)
	OnFailure func(ctx context.Context, failure DelegatedFailure)
}
