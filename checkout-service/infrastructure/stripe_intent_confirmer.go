package infrastructure

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
)

// StripeIntentConfirmer implements domain.IntentConfirmer by confirming the
// externally created PaymentIntent with the tokenized payment method. The
// intent itself is owned by the merchant backend; this adapter only passes
// the opaque references along.
type StripeIntentConfirmer struct {
	returnURL string
}

// NewStripeIntentConfirmer creates a new Stripe intent confirmer. returnURL is
// derived from the merchant URL scheme and used for redirect-based
// confirmation flows.
func NewStripeIntentConfirmer(apiKey, returnURL string) *StripeIntentConfirmer {
	stripe.Key = apiKey
	return &StripeIntentConfirmer{
		returnURL: returnURL,
	}
}

// ConfirmIntent confirms the payment intent. Intents still working through a
// redirect or review step report ErrConfirmationPending; the outcome then
// arrives asynchronously on the provider update surface.
func (c *StripeIntentConfirmer) ConfirmIntent(ctx context.Context, intentRef string, handle domain.PaymentMethodHandle) error {
	if intentRef == "" {
		// confirmation handled entirely by the merchant backend
		return domain.ErrConfirmationPending
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(handle.String()),
	}
	if c.returnURL != "" {
		params.ReturnURL = stripe.String(c.returnURL)
	}
	params.Context = ctx

	intent, err := paymentintent.Confirm(intentRef, params)
	if err != nil {
		return mapStripeError(err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		return nil
	case stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresAction:
		return domain.ErrConfirmationPending
	default:
		return domain.NewTokenizationError("payment intent was not confirmed: "+string(intent.Status), nil)
	}
}
