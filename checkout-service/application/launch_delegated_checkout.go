package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/draftea/checkout-gateway/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LaunchDelegatedCheckoutCommand represents the command to hand the checkout
// flow to a provider-owned UI
type LaunchDelegatedCheckoutCommand struct {
	SessionID        string `json:"session_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	MerchantName     string `json:"merchant_name"`
	Description      string `json:"description,omitempty"`
	PrefillContact   string `json:"prefill_contact,omitempty"`
	PrefillEmail     string `json:"prefill_email,omitempty"`
}

// LaunchDelegatedCheckoutResponse points the UI shell at the provider flow
type LaunchDelegatedCheckoutResponse struct {
	State       string `json:"state"`
	ProviderRef string `json:"provider_ref"`
	CheckoutURL string `json:"checkout_url"`
}

// LaunchDelegatedCheckout use case validates the options, launches the
// provider flow and holds exactly one callback registration for the session
type LaunchDelegatedCheckout struct {
	sessionRepository domain.SessionRepository
	delegatedClient   domain.DelegatedCheckoutClient
	eventPublisher    events.Publisher
}

// NewLaunchDelegatedCheckout creates a new LaunchDelegatedCheckout use case
func NewLaunchDelegatedCheckout(
	sessionRepository domain.SessionRepository,
	delegatedClient domain.DelegatedCheckoutClient,
	eventPublisher events.Publisher,
) *LaunchDelegatedCheckout {
	return &LaunchDelegatedCheckout{
		sessionRepository: sessionRepository,
		delegatedClient:   delegatedClient,
		eventPublisher:    eventPublisher,
	}
}

// Execute launches the delegated flow. Option validation fails fast before the
// provider is contacted.
func (uc *LaunchDelegatedCheckout) Execute(ctx context.Context, cmd *LaunchDelegatedCheckoutCommand) (*LaunchDelegatedCheckoutResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "launch_delegated_checkout",
		trace.WithAttributes(
			attribute.String("session_id", cmd.SessionID),
			attribute.Int64("amount", cmd.AmountMinorUnits),
			attribute.String("currency", cmd.Currency),
		),
	)
	defer span.End()

	response, err := uc.execute(ctx, cmd)
	if err != nil {
		span.RecordError(err)
	}
	telemetry.RecordCounter(ctx, "delegated_launches_total", "Total delegated checkout launches", 1,
		attribute.String("status", launchStatus(response, err)),
	)

	return response, err
}

func launchStatus(response *LaunchDelegatedCheckoutResponse, err error) string {
	if err != nil {
		return "error"
	}
	return response.State
}

func (uc *LaunchDelegatedCheckout) execute(ctx context.Context, cmd *LaunchDelegatedCheckoutCommand) (*LaunchDelegatedCheckoutResponse, error) {
	sessionID, err := models.NewID(cmd.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session ID")
	}

	opts := domain.DelegatedCheckoutOptions{
		Amount:         models.NewMoney(cmd.AmountMinorUnits, cmd.Currency),
		MerchantName:   cmd.MerchantName,
		Description:    cmd.Description,
		PrefillContact: cmd.PrefillContact,
		PrefillEmail:   cmd.PrefillEmail,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout session")
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	if err := session.BeginDelegated(opts); err != nil {
		return nil, err
	}

	launch, err := uc.delegatedClient.Launch(ctx, session.ID, opts, domain.DelegatedCallbacks{
		OnSuccess: uc.onSuccess(session.ID),
		OnFailure: uc.onFailure(session.ID),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch delegated checkout")
	}

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return &LaunchDelegatedCheckoutResponse{
		State:       string(session.State),
		ProviderRef: launch.ProviderRef,
		CheckoutURL: launch.CheckoutURL,
	}, nil
}

// onSuccess forwards the provider's success callback into the state machine
func (uc *LaunchDelegatedCheckout) onSuccess(sessionID models.ID) func(context.Context, domain.DelegatedSuccess) {
	return func(ctx context.Context, result domain.DelegatedSuccess) {
		session, err := uc.sessionRepository.FindByID(ctx, sessionID)
		if err != nil || session == nil {
			return
		}
		if err := session.CompleteDelegated(result); err != nil {
			// disposed or duplicate delivery: discard
			return
		}
		uc.finish(ctx, session)
	}
}

// onFailure forwards the provider's failure callback into the state machine
func (uc *LaunchDelegatedCheckout) onFailure(sessionID models.ID) func(context.Context, domain.DelegatedFailure) {
	return func(ctx context.Context, failure domain.DelegatedFailure) {
		session, err := uc.sessionRepository.FindByID(ctx, sessionID)
		if err != nil || session == nil {
			return
		}
		if err := session.FailDelegated(failure); err != nil {
			return
		}
		uc.finish(ctx, session)
	}
}

func (uc *LaunchDelegatedCheckout) finish(ctx context.Context, session *domain.CheckoutSession) {
	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return
	}
	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return
	}
	session.ClearEvents()
}
