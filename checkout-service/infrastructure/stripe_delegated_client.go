package infrastructure

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/models"
)

type delegatedRegistration struct {
	sessionID models.ID
	callbacks domain.DelegatedCallbacks
}

// StripeDelegatedClient implements domain.DelegatedCheckoutClient using
// Stripe's provider-hosted checkout page. The provider owns the entire UI;
// this client only launches the flow and forwards the outcome to the single
// callback registration held per session.
type StripeDelegatedClient struct {
	successURL string
	cancelURL  string

	mux           sync.Mutex
	registrations map[string]delegatedRegistration // provider ref -> registration
	bySession     map[models.ID]string
}

// NewStripeDelegatedClient creates a new Stripe delegated checkout client
func NewStripeDelegatedClient(apiKey, successURL, cancelURL string) *StripeDelegatedClient {
	stripe.Key = apiKey
	return &StripeDelegatedClient{
		successURL:    successURL,
		cancelURL:     cancelURL,
		registrations: make(map[string]delegatedRegistration),
		bySession:     make(map[models.ID]string),
	}
}

// Launch creates the provider-hosted checkout flow and registers the callback
// pair. Options are assumed validated by the caller; the amount guard here is
// the last line before the network.
func (c *StripeDelegatedClient) Launch(ctx context.Context, sessionID models.ID, opts domain.DelegatedCheckoutOptions, callbacks domain.DelegatedCallbacks) (*domain.DelegatedLaunch, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(opts.Amount.Currency),
					UnitAmount: stripe.Int64(opts.Amount.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(opts.MerchantName),
					},
				},
			},
		},
	}
	if opts.Description != "" {
		params.LineItems[0].PriceData.ProductData.Description = stripe.String(opts.Description)
	}
	if opts.PrefillEmail != "" {
		params.CustomerEmail = stripe.String(opts.PrefillEmail)
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	c.mux.Lock()
	// a relaunch replaces the previous registration for the session
	if prev, ok := c.bySession[sessionID]; ok {
		delete(c.registrations, prev)
	}
	c.registrations[sess.ID] = delegatedRegistration{sessionID: sessionID, callbacks: callbacks}
	c.bySession[sessionID] = sess.ID
	c.mux.Unlock()

	return &domain.DelegatedLaunch{
		ProviderRef: sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// Deliver fires exactly one registered callback per launch and drops anything
// delivered after release or a prior delivery
func (c *StripeDelegatedClient) Deliver(ctx context.Context, providerRef string, success *domain.DelegatedSuccess, failure *domain.DelegatedFailure) bool {
	c.mux.Lock()
	reg, ok := c.registrations[providerRef]
	if ok {
		delete(c.registrations, providerRef)
		delete(c.bySession, reg.sessionID)
	}
	c.mux.Unlock()

	if !ok {
		return false
	}

	switch {
	case success != nil && reg.callbacks.OnSuccess != nil:
		reg.callbacks.OnSuccess(ctx, *success)
	case failure != nil && reg.callbacks.OnFailure != nil:
		reg.callbacks.OnFailure(ctx, *failure)
	}
	return true
}

// Release clears the registration for a session so late outcomes cannot reach
// a disposed session
func (c *StripeDelegatedClient) Release(sessionID models.ID) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if ref, ok := c.bySession[sessionID]; ok {
		delete(c.registrations, ref)
		delete(c.bySession, sessionID)
	}
}
