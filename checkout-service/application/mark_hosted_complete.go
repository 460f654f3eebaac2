package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// MarkHostedCompleteCommand carries the completeness flag reported by the
// processor's hosted field component
type MarkHostedCompleteCommand struct {
	SessionID string `json:"session_id"`
	Complete  bool   `json:"complete"`
}

// MarkHostedCompleteResponse reports the resulting state
type MarkHostedCompleteResponse struct {
	State    string `json:"state"`
	Complete bool   `json:"complete"`
}

// MarkHostedComplete use case records hosted-field completeness
type MarkHostedComplete struct {
	sessionRepository domain.SessionRepository
	eventPublisher    events.Publisher
}

// NewMarkHostedComplete creates a new MarkHostedComplete use case
func NewMarkHostedComplete(
	sessionRepository domain.SessionRepository,
	eventPublisher events.Publisher,
) *MarkHostedComplete {
	return &MarkHostedComplete{
		sessionRepository: sessionRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute records the completeness flag supplied by the hosted component
func (uc *MarkHostedComplete) Execute(ctx context.Context, cmd *MarkHostedCompleteCommand) (*MarkHostedCompleteResponse, error) {
	sessionID, err := models.NewID(cmd.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session ID")
	}

	session, err := uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout session")
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	if err := session.SetHostedComplete(cmd.Complete); err != nil {
		return nil, err
	}

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return &MarkHostedCompleteResponse{
		State:    string(session.State),
		Complete: session.IsComplete(),
	}, nil
}
