package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// DisposeCheckoutCommand represents the command to cancel a session when the
// hosting screen closes
type DisposeCheckoutCommand struct {
	SessionID string `json:"session_id"`
}

// DisposeCheckout use case cancels a session. Card data is erased, the
// delegated callback registration is cleared, and any response still in
// flight will be discarded on arrival.
type DisposeCheckout struct {
	sessionRepository domain.SessionRepository
	delegatedClient   domain.DelegatedCheckoutClient
	eventPublisher    events.Publisher
}

// NewDisposeCheckout creates a new DisposeCheckout use case
func NewDisposeCheckout(
	sessionRepository domain.SessionRepository,
	delegatedClient domain.DelegatedCheckoutClient,
	eventPublisher events.Publisher,
) *DisposeCheckout {
	return &DisposeCheckout{
		sessionRepository: sessionRepository,
		delegatedClient:   delegatedClient,
		eventPublisher:    eventPublisher,
	}
}

// Execute disposes the session; disposing twice is a no-op
func (uc *DisposeCheckout) Execute(ctx context.Context, cmd *DisposeCheckoutCommand) error {
	sessionID, err := models.NewID(cmd.SessionID)
	if err != nil {
		return errors.Wrap(err, "invalid session ID")
	}

	session, err := uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to find checkout session")
	}
	if session == nil {
		return domain.ErrSessionNotFound
	}
	if session.IsDisposed() {
		return nil
	}

	if err := session.Dispose(); err != nil {
		return err
	}

	// use-after-dispose must be impossible: no callback survives disposal
	uc.delegatedClient.Release(session.ID)

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return nil
}
