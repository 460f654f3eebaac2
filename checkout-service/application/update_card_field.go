package application

import (
	"context"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// UpdateCardFieldCommand represents one incremental card field update
type UpdateCardFieldCommand struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

// UpdateCardFieldResponse reports the state and completeness after the update
type UpdateCardFieldResponse struct {
	State    string `json:"state"`
	Complete bool   `json:"complete"`
}

// UpdateCardField use case applies a raw card field update to a session
type UpdateCardField struct {
	sessionRepository domain.SessionRepository
	eventPublisher    events.Publisher
}

// NewUpdateCardField creates a new UpdateCardField use case
func NewUpdateCardField(
	sessionRepository domain.SessionRepository,
	eventPublisher events.Publisher,
) *UpdateCardField {
	return &UpdateCardField{
		sessionRepository: sessionRepository,
		eventPublisher:    eventPublisher,
	}
}

// Execute recomputes the card snapshot and completeness; no remote call
func (uc *UpdateCardField) Execute(ctx context.Context, cmd *UpdateCardFieldCommand) (*UpdateCardFieldResponse, error) {
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

	if err := session.UpdateCardField(cmd.Field, cmd.Value); err != nil {
		return nil, err
	}

	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()

	return &UpdateCardFieldResponse{
		State:    string(session.State),
		Complete: session.IsComplete(),
	}, nil
}
