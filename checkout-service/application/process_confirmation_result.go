package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// ProcessConfirmationResultCommand carries an asynchronously delivered intent
// confirmation outcome
type ProcessConfirmationResultCommand struct {
	SessionID string `json:"session_id"`
	Confirmed bool   `json:"confirmed"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ProcessConfirmationResult use case drives awaiting sessions to their
// terminal state when the external confirmation outcome arrives. Outcomes for
// disposed or already-terminated sessions are discarded; a flaky collaborator
// re-delivering an outcome never produces a second terminal event.
type ProcessConfirmationResult struct {
	sessionRepository domain.SessionRepository
	eventPublisher    events.Publisher
}

// NewProcessConfirmationResult creates a new ProcessConfirmationResult use case
func NewProcessConfirmationResult(
	sessionRepository domain.SessionRepository,
	eventPublisher events.Publisher,
) *ProcessConfirmationResult {
	return &ProcessConfirmationResult{
		sessionRepository: sessionRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute applies the confirmation outcome to the session
func (uc *ProcessConfirmationResult) Execute(ctx context.Context, cmd *ProcessConfirmationResultCommand) error {
	sessionID, err := models.NewID(cmd.SessionID)
	if err != nil {
		return errors.Wrap(err, "invalid session ID")
	}

	session, err := uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return errors.Wrap(err, "failed to find checkout session")
	}
	if session == nil {
		// session already gone, nothing to terminate
		return nil
	}

	if cmd.Confirmed {
		err = session.ConfirmationSucceeded()
	} else {
		reason := cmd.Reason
		if reason == "" {
			reason = "payment intent confirmation failed"
		}
		err = session.ConfirmationFailed(domain.NewTokenizationError(reason, nil))
	}
	if err != nil {
		// disposed, duplicate or out-of-order delivery: discard silently
		return nil
	}

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return nil
}
