package infrastructure

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
)

// mapStripeError translates a Stripe API failure into the checkout error
// taxonomy. Credential problems surface as invalid_request with a 401, so the
// status code is checked before the error type.
func mapStripeError(err error) *domain.Error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		// transport-level failure, never reached the API
		return domain.NewNetworkError("could not reach payment processor", err)
	}

	if stripeErr.HTTPStatusCode == http.StatusUnauthorized {
		return domain.NewAuthError("payment processor rejected the API credentials", err)
	}

	switch stripeErr.Type {
	case stripe.ErrorTypeCard:
		return domain.NewTokenizationError(stripeErr.Msg, err)
	case stripe.ErrorTypeInvalidRequest:
		return domain.NewInvalidRequestError(stripeErr.Msg, err)
	case stripe.ErrorTypeAPI:
		return domain.NewNetworkError(stripeErr.Msg, err)
	default:
		return domain.NewNetworkError(stripeErr.Msg, err)
	}
}
