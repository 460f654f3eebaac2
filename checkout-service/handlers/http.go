package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftea/checkout-gateway/checkout-service/application"
	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// CheckoutHandlers contains checkout HTTP handlers
type CheckoutHandlers struct {
	startCheckout      *application.StartCheckout
	getCheckout        *application.GetCheckout
	updateCardField    *application.UpdateCardField
	markHosted         *application.MarkHostedComplete
	submitCheckout     *application.SubmitCheckout
	launchDelegated    *application.LaunchDelegatedCheckout
	disposeCheckout    *application.DisposeCheckout
	delegatedResult    *application.ProcessDelegatedResult
	confirmationResult *application.ProcessConfirmationResult
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(
	startCheckout *application.StartCheckout,
	getCheckout *application.GetCheckout,
	updateCardField *application.UpdateCardField,
	markHosted *application.MarkHostedComplete,
	submitCheckout *application.SubmitCheckout,
	launchDelegated *application.LaunchDelegatedCheckout,
	disposeCheckout *application.DisposeCheckout,
	delegatedResult *application.ProcessDelegatedResult,
	confirmationResult *application.ProcessConfirmationResult,
) *CheckoutHandlers {
	return &CheckoutHandlers{
		startCheckout:      startCheckout,
		getCheckout:        getCheckout,
		updateCardField:    updateCardField,
		markHosted:         markHosted,
		submitCheckout:     submitCheckout,
		launchDelegated:    launchDelegated,
		disposeCheckout:    disposeCheckout,
		delegatedResult:    delegatedResult,
		confirmationResult: confirmationResult,
	}
}

// StartCheckout handles session creation requests
func (h *CheckoutHandlers) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var cmd application.StartCheckoutCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.startCheckout.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetCheckout handles session retrieval requests
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getCheckout.Execute(r.Context(), &application.GetCheckoutQuery{
		SessionID: sessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// UpdateCardField handles incremental raw card field updates
func (h *CheckoutHandlers) UpdateCardField(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.UpdateCardFieldCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd.SessionID = sessionID

	response, err := h.updateCardField.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// MarkHostedComplete handles hosted-field completeness signals
func (h *CheckoutHandlers) MarkHostedComplete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.MarkHostedCompleteCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd.SessionID = sessionID

	response, err := h.markHosted.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SubmitCheckout handles tokenization submit requests
func (h *CheckoutHandlers) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.submitCheckout.Execute(r.Context(), &application.SubmitCheckoutCommand{
		SessionID: sessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// LaunchDelegated handles delegated checkout launch requests
func (h *CheckoutHandlers) LaunchDelegated(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.LaunchDelegatedCheckoutCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd.SessionID = sessionID

	response, err := h.launchDelegated.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// DisposeCheckout handles session disposal requests
func (h *CheckoutHandlers) DisposeCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	err := h.disposeCheckout.Execute(r.Context(), &application.DisposeCheckoutCommand{
		SessionID: sessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DelegatedWebhook handles provider outcome deliveries for delegated flows
func (h *CheckoutHandlers) DelegatedWebhook(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessDelegatedResultCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if cmd.ProviderRef == "" {
		http.Error(w, "Provider reference is required", http.StatusBadRequest)
		return
	}

	if err := h.delegatedResult.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ConfirmationWebhook handles asynchronous intent confirmation outcomes
func (h *CheckoutHandlers) ConfirmationWebhook(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessConfirmationResultCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if cmd.SessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	if err := h.confirmationResult.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkout-sessions", func(r chi.Router) {
			r.Post("/", h.StartCheckout)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetCheckout)
				r.Delete("/", h.DisposeCheckout)
				r.Put("/card", h.UpdateCardField)
				r.Put("/hosted-complete", h.MarkHostedComplete)
				r.Post("/submit", h.SubmitCheckout)
				r.Post("/launch", h.LaunchDelegated)
			})
		})
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/delegated", h.DelegatedWebhook)
			r.Post("/confirmation", h.ConfirmationWebhook)
		})
	})
}

// writeError maps domain errors onto HTTP statuses. Lifecycle sentinels map to
// conflict-style statuses; classified provider errors never reach here because
// the submit flow folds them into the response body.
func writeError(w http.ResponseWriter, err error) {
	cause := errors.Cause(err)

	switch cause {
	case domain.ErrSessionNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case domain.ErrSessionDisposed, domain.ErrSessionTerminal:
		http.Error(w, err.Error(), http.StatusGone)
		return
	case domain.ErrSubmitInFlight, domain.ErrSessionConflict:
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if domainErr, ok := domain.AsError(cause); ok {
		switch domainErr.Kind {
		case domain.ErrorKindValidation, domain.ErrorKindInvalidRequest:
			http.Error(w, domainErr.Message, http.StatusUnprocessableEntity)
		case domain.ErrorKindAuth:
			http.Error(w, domainErr.Message, http.StatusBadGateway)
		default:
			http.Error(w, domainErr.Message, http.StatusBadGateway)
		}
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
