package infrastructure

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentmethod"
	"github.com/stripe/stripe-go/v82/token"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/models"
)

// StripeTokenizationClient implements domain.TokenizationClient against the
// Stripe API.
//
// Raw-field mode pushes card data collected in this process to Stripe's card
// token primitive before method creation. That path means PAN and CVC transit
// application memory and it widens PCI scope accordingly; hosted-field mode,
// where Stripe's own component holds the card, does not. The two modes are
// not equivalent and the raw path announces itself in the log.
type StripeTokenizationClient struct {
	warnOnce sync.Once
}

// NewStripeTokenizationClient creates a new Stripe tokenization client
func NewStripeTokenizationClient(apiKey string) *StripeTokenizationClient {
	stripe.Key = apiKey
	return &StripeTokenizationClient{}
}

// UpdateRawCardDetails pushes locally collected card fields through Stripe's
// raw card primitive so field rejections surface ahead of submit. Card tokens
// are single-use; method creation mints its own from the snapshot it is given.
func (c *StripeTokenizationClient) UpdateRawCardDetails(ctx context.Context, sessionID models.ID, card domain.CardDetails) error {
	_, err := c.tokenizeRawCard(ctx, card)
	return err
}

// tokenizeRawCard mints a fresh single-use card token from the given snapshot
func (c *StripeTokenizationClient) tokenizeRawCard(ctx context.Context, card domain.CardDetails) (string, error) {
	c.warnOnce.Do(func() {
		log.Printf("[stripe] WARNING: raw-field tokenization active; card data transits application memory (PCI scope applies)")
	})

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(card.Number()),
			ExpMonth: stripe.String(strconv.Itoa(card.ExpMonth())),
			ExpYear:  stripe.String(strconv.Itoa(card.ExpYear())),
			CVC:      stripe.String(card.CVC()),
		},
	}
	params.Context = ctx

	tok, err := token.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}

	return tok.ID, nil
}

// CreatePaymentMethod tokenizes the card data source into an opaque payment
// method handle
func (c *StripeTokenizationClient) CreatePaymentMethod(ctx context.Context, sessionID models.ID, source domain.CardDataSource, billing domain.BillingProfile) (domain.PaymentMethodHandle, error) {
	switch source.Type {
	case domain.CardDataSourceRaw:
		return c.createFromRawCard(ctx, sessionID, source.RawCardSource.Card, billing)
	case domain.CardDataSourceHostedField:
		return c.attachBilling(ctx, source.HostedFieldSource.Ref, billing)
	default:
		return "", domain.NewInvalidRequestError("unsupported card data source: "+string(source.Type), nil)
	}
}

// createFromRawCard tokenizes the supplied card snapshot, then creates the
// payment method. Every attempt mints its own token: a snapshot corrected
// after a processor rejection must reach Stripe, never a token from the
// rejected attempt.
func (c *StripeTokenizationClient) createFromRawCard(ctx context.Context, sessionID models.ID, card domain.CardDetails, billing domain.BillingProfile) (domain.PaymentMethodHandle, error) {
	cardToken, err := c.tokenizeRawCard(ctx, card)
	if err != nil {
		return "", err
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(cardToken),
		},
		BillingDetails: billingDetailsParams(billing),
	}
	params.Context = ctx

	pm, err := paymentmethod.New(params)
	if err != nil {
		return "", mapStripeError(err)
	}

	return domain.PaymentMethodHandle(pm.ID), nil
}

// attachBilling completes a hosted-field payment method with billing details.
// The card itself never touched this process.
func (c *StripeTokenizationClient) attachBilling(ctx context.Context, hostedRef string, billing domain.BillingProfile) (domain.PaymentMethodHandle, error) {
	params := &stripe.PaymentMethodParams{
		BillingDetails: billingDetailsParams(billing),
	}
	params.Context = ctx

	pm, err := paymentmethod.Update(hostedRef, params)
	if err != nil {
		return "", mapStripeError(err)
	}

	return domain.PaymentMethodHandle(pm.ID), nil
}

func billingDetailsParams(billing domain.BillingProfile) *stripe.PaymentMethodBillingDetailsParams {
	return &stripe.PaymentMethodBillingDetailsParams{
		Email: stripe.String(billing.Email),
		Phone: stripe.String(billing.Phone),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(billing.Address.Line1),
			Line2:      stripe.String(billing.Address.Line2),
			City:       stripe.String(billing.Address.City),
			State:      stripe.String(billing.Address.State),
			PostalCode: stripe.String(billing.Address.PostalCode),
			Country:    stripe.String(billing.Address.Country),
		},
	}
}
