package application

import (
	"context"
	"time"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/draftea/checkout-gateway/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SubmitCheckoutCommand represents the command to submit collected card data
type SubmitCheckoutCommand struct {
	SessionID string `json:"session_id"`
}

// SubmitCheckoutResponse reports the state reached by this submit. Processor
// rejections surface here as the failed state with the classified reason, not
// as transport errors.
type SubmitCheckoutResponse struct {
	State        string `json:"state"`
	Handle       string `json:"handle,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// SubmitCheckout use case drives one tokenization attempt through the state
// machine: validate, tokenize, confirm, terminate
type SubmitCheckout struct {
	sessionRepository domain.SessionRepository
	tokenizer         domain.TokenizationClient
	intentConfirmer   domain.IntentConfirmer
	eventPublisher    events.Publisher
}

// NewSubmitCheckout creates a new SubmitCheckout use case
func NewSubmitCheckout(
	sessionRepository domain.SessionRepository,
	tokenizer domain.TokenizationClient,
	intentConfirmer domain.IntentConfirmer,
	eventPublisher events.Publisher,
) *SubmitCheckout {
	return &SubmitCheckout{
		sessionRepository: sessionRepository,
		tokenizer:         tokenizer,
		intentConfirmer:   intentConfirmer,
		eventPublisher:    eventPublisher,
	}
}

// Execute submits the session. A submit while a prior request is pending is an
// idempotent no-op returning the current state. Results arriving for a session
// disposed mid-flight are discarded without observable state change.
func (uc *SubmitCheckout) Execute(ctx context.Context, cmd *SubmitCheckoutCommand) (*SubmitCheckoutResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "submit_checkout",
		trace.WithAttributes(
			attribute.String("session_id", cmd.SessionID),
		),
	)
	defer span.End()

	response, err := uc.execute(ctx, cmd)

	status := "error"
	if err == nil && response != nil {
		status = response.State
	} else if err != nil {
		span.RecordError(err)
	}
	telemetry.RecordCounter(ctx, "checkout_submits_total", "Total checkout submits", 1,
		attribute.String("status", status),
	)
	telemetry.RecordHistogram(ctx, "checkout_submit_duration_seconds", "Checkout submit duration", time.Since(start).Seconds(),
		attribute.String("status", status),
	)

	return response, err
}

func (uc *SubmitCheckout) execute(ctx context.Context, cmd *SubmitCheckoutCommand) (*SubmitCheckoutResponse, error) {
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

	if err := session.BeginTokenization(); err != nil {
		if errors.Is(err, domain.ErrSubmitInFlight) {
			// double submit: exactly one request stays in flight
			return &SubmitCheckoutResponse{State: string(session.State)}, nil
		}
		return nil, err
	}

	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}
	attempt := session.Attempt

	handle, tokErr := uc.tokenizer.CreatePaymentMethod(ctx, session.ID, session.CardSource(), session.Billing)

	// Reload: the hosting screen may have disposed the session while the
	// request was in flight, in which case the result is discarded.
	session, err = uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload checkout session")
	}
	if session == nil {
		return &SubmitCheckoutResponse{State: string(domain.CheckoutStateFailed)}, domain.ErrSessionNotFound
	}

	if tokErr != nil {
		cerr := domain.Classify(tokErr)
		if err := session.FailTokenization(attempt, cerr); err != nil {
			// disposed or superseded: drop the late result
			return &SubmitCheckoutResponse{State: string(session.State)}, nil
		}
		if err := uc.persist(ctx, session); err != nil {
			return nil, err
		}
		return &SubmitCheckoutResponse{
			State:        string(session.State),
			ErrorKind:    string(cerr.Kind),
			ErrorMessage: cerr.Message,
		}, nil
	}

	if err := session.CompleteTokenization(attempt, handle); err != nil {
		return &SubmitCheckoutResponse{State: string(session.State)}, nil
	}
	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}

	confErr := uc.intentConfirmer.ConfirmIntent(ctx, session.IntentRef, handle)

	session, err = uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload checkout session")
	}
	if session == nil {
		return &SubmitCheckoutResponse{State: string(domain.CheckoutStateFailed)}, domain.ErrSessionNotFound
	}

	switch {
	case confErr == nil:
		if err := session.ConfirmationSucceeded(); err != nil {
			return &SubmitCheckoutResponse{State: string(session.State)}, nil
		}
	case errors.Is(confErr, domain.ErrConfirmationPending):
		// outcome arrives asynchronously; the session stays awaiting
		return &SubmitCheckoutResponse{
			State:  string(session.State),
			Handle: handle.String(),
		}, nil
	default:
		cerr := domain.Classify(confErr)
		if err := session.ConfirmationFailed(cerr); err != nil {
			return &SubmitCheckoutResponse{State: string(session.State)}, nil
		}
		if err := uc.persist(ctx, session); err != nil {
			return nil, err
		}
		return &SubmitCheckoutResponse{
			State:        string(session.State),
			ErrorKind:    string(cerr.Kind),
			ErrorMessage: cerr.Message,
		}, nil
	}

	if err := uc.persist(ctx, session); err != nil {
		return nil, err
	}

	return &SubmitCheckoutResponse{
		State:  string(session.State),
		Handle: session.Handle.String(),
	}, nil
}

// persist saves the session and publishes its recorded events
func (uc *SubmitCheckout) persist(ctx context.Context, session *domain.CheckoutSession) error {
	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to save checkout session")
	}
	if err := uc.eventPublisher.Publish(ctx, session.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish checkout events")
	}
	session.ClearEvents()
	return nil
}
