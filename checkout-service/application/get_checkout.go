package application

import (
	"context"
	"time"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// GetCheckoutQuery represents the query for a session's current state
type GetCheckoutQuery struct {
	SessionID string `json:"session_id"`
}

// GetCheckoutResponse is the UI shell's read surface. Card data is exposed
// only as last-four digits.
type GetCheckoutResponse struct {
	SessionID    string `json:"session_id"`
	Mode         string `json:"mode"`
	State        string `json:"state"`
	Complete     bool   `json:"complete"`
	CardLast4    string `json:"card_last4,omitempty"`
	Handle       string `json:"handle,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Disposed     bool   `json:"disposed"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// GetCheckout use case
type GetCheckout struct {
	sessionRepository domain.SessionRepository
}

// NewGetCheckout creates a new GetCheckout use case
func NewGetCheckout(sessionRepository domain.SessionRepository) *GetCheckout {
	return &GetCheckout{
		sessionRepository: sessionRepository,
	}
}

// Execute executes the get checkout query
func (uc *GetCheckout) Execute(ctx context.Context, query *GetCheckoutQuery) (*GetCheckoutResponse, error) {
	if query.SessionID == "" {
		return nil, errors.New("session ID is required")
	}

	sessionID, err := models.NewID(query.SessionID)
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

	response := &GetCheckoutResponse{
		SessionID: session.ID.String(),
		Mode:      string(session.Mode),
		State:     string(session.State),
		Complete:  session.IsComplete(),
		CardLast4: session.Card.Last4(),
		Handle:    session.Handle.String(),
		Disposed:  session.IsDisposed(),
		CreatedAt: session.Timestamps.CreatedAt.Format(time.RFC3339),
		UpdatedAt: session.Timestamps.UpdatedAt.Format(time.RFC3339),
	}

	if session.LastError != nil {
		response.ErrorKind = string(session.LastError.Kind)
		response.ErrorMessage = session.LastError.Message
	}

	return response, nil
}
