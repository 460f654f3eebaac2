package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
)

// StartCheckoutCommand represents the command to open a checkout session
type StartCheckoutCommand struct {
	Mode             string `json:"mode"`
	CustomerRef      string `json:"customer_ref"`
	PaymentIntentRef string `json:"payment_intent_ref,omitempty"`
	HostedFieldRef   string `json:"hosted_field_ref,omitempty"`
}

// StartCheckoutResponse represents the response for starting a checkout
type StartCheckoutResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// StartCheckout use case creates a checkout session
type StartCheckout struct {
	sessionRepository domain.SessionRepository
	billingProvider   domain.BillingProfileProvider
	eventPublisher    events.Publisher
}

// NewStartCheckout creates a new StartCheckout use case
func NewStartCheckout(
	sessionRepository domain.SessionRepository,
	billingProvider domain.BillingProfileProvider,
	eventPublisher events.Publisher,
) *StartCheckout {
	return &StartCheckout{
		sessionRepository: sessionRepository,
		billingProvider:   billingProvider,
		eventPublisher:    eventPublisher,
	}
}

// Execute opens a new checkout session in the requested integration mode
func (uc *StartCheckout) Execute(ctx context.Context, cmd *StartCheckoutCommand) (*StartCheckoutResponse, error) {
	billing, err := uc.billingProvider.BillingProfile(ctx, cmd.CustomerRef)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve billing profile")
	}

	session, err := domain.StartCheckoutSession(
		domain.CheckoutMode(cmd.Mode),
		billing,
		cmd.PaymentIntentRef,
		cmd.HostedFieldRef,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return &StartCheckoutResponse{
		SessionID: session.ID.String(),
		State:     string(session.State),
	}, nil
}
