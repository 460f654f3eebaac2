package handlers

import (
	"context"
	"fmt"

	"github.com/draftea/checkout-gateway/checkout-service/application"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
)

// CheckoutEventHandlers contains event handlers for the checkout service
type CheckoutEventHandlers struct {
	confirmationResult *application.ProcessConfirmationResult
	delegatedResult    *application.ProcessDelegatedResult
}

// NewCheckoutEventHandlers creates new checkout event handlers
func NewCheckoutEventHandlers(
	confirmationResult *application.ProcessConfirmationResult,
	delegatedResult *application.ProcessDelegatedResult,
) *CheckoutEventHandlers {
	return &CheckoutEventHandlers{
		confirmationResult: confirmationResult,
		delegatedResult:    delegatedResult,
	}
}

// Handle implements the events.EventHandler interface
func (h *CheckoutEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.IntentConfirmationResultEvent:
		return h.HandleConfirmationResult(ctx, event)
	case events.ExternalProviderUpdateEvent:
		return h.HandleProviderUpdate(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *CheckoutEventHandlers) HandlerID() string {
	return "checkout-service-event-handler"
}

// HandleConfirmationResult handles asynchronous intent confirmation outcomes
func (h *CheckoutEventHandlers) HandleConfirmationResult(ctx context.Context, event *events.Event) error {
	if event.EventType != events.IntentConfirmationResultEvent {
		return nil
	}

	var cmd application.ProcessConfirmationResultCommand
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return errors.Wrap(err, "invalid confirmation result payload")
	}
	if cmd.SessionID == "" {
		return errors.New("session_id is required")
	}

	if err := h.confirmationResult.Execute(ctx, &cmd); err != nil {
		fmt.Printf("Failed to process confirmation result for session %s: %v\n", cmd.SessionID, err)
		return err
	}

	return nil
}

// HandleProviderUpdate handles delegated provider outcome deliveries
func (h *CheckoutEventHandlers) HandleProviderUpdate(ctx context.Context, event *events.Event) error {
	if event.EventType != events.ExternalProviderUpdateEvent {
		return nil
	}

	var cmd application.ProcessDelegatedResultCommand
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return errors.Wrap(err, "invalid provider update payload")
	}
	if cmd.ProviderRef == "" {
		return errors.New("provider_ref is required")
	}

	if err := h.delegatedResult.Execute(ctx, &cmd); err != nil {
		fmt.Printf("Failed to process provider update %s: %v\n", cmd.ProviderRef, err)
		return err
	}

	return nil
}
