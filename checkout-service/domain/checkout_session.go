package domain

import (
	"time"

	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
)

// PaymentMethodHandle is the opaque identifier returned by the processor after
// successful tokenization. It is never parsed, only passed along.
type PaymentMethodHandle string

func (h PaymentMethodHandle) String() string {
	return string(h)
}

func (h PaymentMethodHandle) IsEmpty() bool {
	return h == ""
}

// CheckoutState represents the orchestration state of a checkout session
type CheckoutState string

const (
	CheckoutStateIdle                 CheckoutState = "idle"
	CheckoutStateCollecting           CheckoutState = "collecting"
	CheckoutStateValidating           CheckoutState = "validating"
	CheckoutStateTokenizing           CheckoutState = "tokenizing"
	CheckoutStateAwaitingConfirmation CheckoutState = "awaiting_confirmation"
	CheckoutStateSucceeded            CheckoutState = "succeeded"
	CheckoutStateFailed               CheckoutState = "failed"
)

// IsTerminal reports whether the state ends the checkout attempt
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed
}

// CheckoutMode selects how card data reaches the processor
type CheckoutMode string

const (
	// CheckoutModeRawField collects card fields locally. Card data transits
	// application memory; see CardDataSourceRaw for the compliance caveat.
	CheckoutModeRawField CheckoutMode = "raw_field"
	// CheckoutModeHostedField delegates card collection to the processor's
	// own field component; only an opaque reference is held here.
	CheckoutModeHostedField CheckoutMode = "hosted_field"
	// CheckoutModeDelegated hands the entire checkout UI to the provider.
	CheckoutModeDelegated CheckoutMode = "delegated"
)

// CheckoutSession aggregate root. One session per checkout attempt, created
// when the hosting screen opens and disposed when it closes or completes. All
// state is in-memory and session-scoped.
type CheckoutSession struct {
	ID             models.ID
	Mode           CheckoutMode
	State          CheckoutState
	Card           CardDetails
	HostedFieldRef string
	HostedComplete bool
	Billing        BillingProfile
	IntentRef      string // externally created payment intent, opaque
	Handle         PaymentMethodHandle
	Attempt        int
	LastError      *Error
	Timestamps     models.Timestamps
	Version        models.Version

	disposed      bool
	terminalFired bool
	events        []*events.Event
}

// StartCheckoutSession creates a session for the given integration mode
func StartCheckoutSession(mode CheckoutMode, billing BillingProfile, intentRef, hostedFieldRef string) (*CheckoutSession, error) {
	switch mode {
	case CheckoutModeRawField, CheckoutModeHostedField, CheckoutModeDelegated:
	default:
		return nil, NewValidationError("unsupported checkout mode: " + string(mode))
	}

	if mode == CheckoutModeHostedField && hostedFieldRef == "" {
		return nil, NewValidationError("hosted field reference is required for hosted field mode")
	}

	if mode != CheckoutModeDelegated {
		if err := billing.Validate(); err != nil {
			return nil, err
		}
	}

	session := &CheckoutSession{
		ID:             models.GenerateUUID(),
		Mode:           mode,
		State:          CheckoutStateIdle,
		Billing:        billing,
		IntentRef:      intentRef,
		HostedFieldRef: hostedFieldRef,
		Timestamps:     models.NewTimestamps(),
		Version:        models.NewVersion(),
	}

	session.recordEvent(events.NewEvent(session.ID, events.CheckoutSessionStartedEvent, CheckoutStartedData{
		SessionID: session.ID,
		Mode:      string(mode),
		IntentRef: intentRef,
	}))

	return session, nil
}

// UpdateCardField applies one raw field update, producing a fresh immutable
// card snapshot. Valid while collecting; after a retryable failure it first
// returns the session to collecting. Never triggers a remote call.
func (s *CheckoutSession) UpdateCardField(name, value string) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.Mode != CheckoutModeRawField {
		return NewValidationError("card fields are collected by the processor in this mode")
	}

	if err := s.ensureCollecting(); err != nil {
		return err
	}

	card, err := s.Card.WithField(name, value)
	if err != nil {
		return err
	}
	s.Card = card
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.CheckoutCardUpdatedEvent, CardUpdatedData{
		SessionID: s.ID,
		Field:     name,
		Last4:     card.Last4(),
		Complete:  card.IsComplete(),
	}))

	return nil
}

// SetHostedComplete records the completeness flag reported by the processor's
// hosted field component
func (s *CheckoutSession) SetHostedComplete(complete bool) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.Mode != CheckoutModeHostedField {
		return NewValidationError("completeness is computed locally in this mode")
	}

	if err := s.ensureCollecting(); err != nil {
		return err
	}

	s.HostedComplete = complete
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.CheckoutCardUpdatedEvent, CardUpdatedData{
		SessionID: s.ID,
		Complete:  complete,
	}))

	return nil
}

// ensureCollecting moves Idle to Collecting, re-arms a retryably Failed
// session, and rejects updates in any other state
func (s *CheckoutSession) ensureCollecting() error {
	switch s.State {
	case CheckoutStateIdle:
		s.State = CheckoutStateCollecting
	case CheckoutStateCollecting:
	case CheckoutStateFailed:
		if s.LastError != nil && !s.LastError.Retryable() {
			return errors.Wrap(ErrSessionTerminal, "session failed fatally and cannot be retried")
		}
		s.State = CheckoutStateCollecting
		s.LastError = nil
		s.terminalFired = false
		s.recordEvent(events.NewEvent(s.ID, events.CheckoutRetryingEvent, RetryingData{SessionID: s.ID}))
	default:
		return NewValidationError("card data can only be updated while collecting")
	}
	return nil
}

// IsComplete reports whether the collected card data may be submitted
func (s *CheckoutSession) IsComplete() bool {
	switch s.Mode {
	case CheckoutModeRawField:
		return s.Card.IsComplete()
	case CheckoutModeHostedField:
		return s.HostedComplete
	default:
		return false
	}
}

// BeginTokenization guards and performs the Collecting -> Validating ->
// Tokenizing transition, numbering the attempt. A submit while a prior
// request is pending yields ErrSubmitInFlight so the caller can no-op.
func (s *CheckoutSession) BeginTokenization() error {
	if s.disposed {
		return ErrSessionDisposed
	}

	switch s.State {
	case CheckoutStateTokenizing, CheckoutStateAwaitingConfirmation:
		return ErrSubmitInFlight
	case CheckoutStateCollecting:
	default:
		if s.State.IsTerminal() {
			return errors.Wrap(ErrSessionTerminal, "cannot submit")
		}
		return NewValidationError("submit requires collected card data")
	}

	s.State = CheckoutStateValidating
	if !s.IsComplete() {
		s.State = CheckoutStateCollecting
		return NewValidationError("card details are incomplete")
	}

	s.State = CheckoutStateTokenizing
	s.Attempt++
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.CheckoutTokenizingEvent, TokenizingData{
		SessionID: s.ID,
		Attempt:   s.Attempt,
		Mode:      string(s.Mode),
	}))

	return nil
}

// CardSource returns the tagged variant the tokenization client consumes
func (s *CheckoutSession) CardSource() CardDataSource {
	if s.Mode == CheckoutModeHostedField {
		return NewHostedFieldSource(s.HostedFieldRef)
	}
	return NewRawCardSource(s.Card)
}

// CompleteTokenization stores the processor handle and advances to awaiting
// confirmation. Results for superseded attempts or disposed sessions are
// rejected so a late response cannot mutate the session.
func (s *CheckoutSession) CompleteTokenization(attempt int, handle PaymentMethodHandle) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if attempt != s.Attempt || s.State != CheckoutStateTokenizing {
		return ErrStaleAttempt
	}
	if handle.IsEmpty() {
		return NewInvalidRequestError("processor returned an empty payment method handle", nil)
	}

	s.Handle = handle
	s.Card = CardDetails{} // raw card data must not outlive tokenization
	s.State = CheckoutStateAwaitingConfirmation
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.CheckoutTokenizedEvent, TokenizedData{
		SessionID: s.ID,
		Attempt:   attempt,
		Handle:    handle.String(),
	}))
	s.recordEvent(events.NewEvent(s.ID, events.CheckoutAwaitingConfirmationEvent, AwaitingConfirmationData{
		SessionID: s.ID,
		IntentRef: s.IntentRef,
		Handle:    handle.String(),
	}))

	return nil
}

// FailTokenization transitions to Failed with the processor's classified error
func (s *CheckoutSession) FailTokenization(attempt int, cerr *Error) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if attempt != s.Attempt || s.State != CheckoutStateTokenizing {
		return ErrStaleAttempt
	}
	return s.fail(cerr)
}

// ConfirmationSucceeded completes the session after the external intent
// confirmation reports success
func (s *CheckoutSession) ConfirmationSucceeded() error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.State != CheckoutStateAwaitingConfirmation {
		return ErrSessionTerminal
	}
	return s.succeed("", "")
}

// ConfirmationFailed fails the session after the external intent confirmation
// reports failure
func (s *CheckoutSession) ConfirmationFailed(cerr *Error) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.State != CheckoutStateAwaitingConfirmation {
		return ErrSessionTerminal
	}
	return s.fail(cerr)
}

// BeginDelegated hands the whole flow to the provider-owned UI. The options
// must already be validated; the guard here is a backstop, the caller fails
// fast before any network activity.
func (s *CheckoutSession) BeginDelegated(opts DelegatedCheckoutOptions) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.Mode != CheckoutModeDelegated {
		return NewValidationError("session was not started in delegated mode")
	}
	if s.State != CheckoutStateIdle {
		return NewValidationError("delegated checkout can only be launched once per session")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	s.State = CheckoutStateAwaitingConfirmation
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.DelegatedCheckoutLaunchedEvent, DelegatedLaunchedData{
		SessionID:    s.ID,
		Amount:       opts.Amount,
		MerchantName: opts.MerchantName,
	}))

	return nil
}

// CompleteDelegated terminates a delegated session on the provider's success
// callback
func (s *CheckoutSession) CompleteDelegated(result DelegatedSuccess) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.State != CheckoutStateAwaitingConfirmation {
		return ErrSessionTerminal
	}
	s.Handle = PaymentMethodHandle(result.PaymentID)
	return s.succeed(result.OrderID, result.Signature)
}

// FailDelegated terminates a delegated session on the provider's failure
// callback
func (s *CheckoutSession) FailDelegated(failure DelegatedFailure) error {
	if s.disposed {
		return ErrSessionDisposed
	}
	if s.State != CheckoutStateAwaitingConfirmation {
		return ErrSessionTerminal
	}
	return s.fail(NewTokenizationError(failure.Description, nil))
}

// Dispose cancels the session. Card data is erased and any late collaborator
// response is discarded; disposing twice is a no-op.
func (s *CheckoutSession) Dispose() error {
	if s.disposed {
		return nil
	}

	s.disposed = true
	s.Card = CardDetails{}
	s.HostedComplete = false
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.CheckoutSessionDisposedEvent, DisposedData{
		SessionID:  s.ID,
		FinalState: string(s.State),
	}))

	return nil
}

// IsDisposed reports whether the session has been cancelled
func (s *CheckoutSession) IsDisposed() bool {
	return s.disposed
}

// succeed fires the single success terminal event per session
func (s *CheckoutSession) succeed(orderID, signature string) error {
	s.State = CheckoutStateSucceeded
	s.Card = CardDetails{}
	s.LastError = nil
	s.touch()

	if s.fireTerminal() {
		s.recordEvent(events.NewEvent(s.ID, events.CheckoutSucceededEvent, SucceededData{
			SessionID:   s.ID,
			Handle:      s.Handle.String(),
			OrderID:     orderID,
			Signature:   signature,
			CompletedAt: time.Now(),
		}))
	}
	return nil
}

// fail fires the single failure terminal event per session. The session is not
// destroyed; retryable failures may be re-armed through ensureCollecting.
func (s *CheckoutSession) fail(cerr *Error) error {
	s.State = CheckoutStateFailed
	s.LastError = cerr
	s.touch()

	if s.fireTerminal() {
		s.recordEvent(events.NewEvent(s.ID, events.CheckoutFailedEvent, FailedData{
			SessionID: s.ID,
			Kind:      string(cerr.Kind),
			Message:   cerr.Message,
			Retryable: cerr.Retryable(),
			FailedAt:  time.Now(),
		}))
	}
	return nil
}

func (s *CheckoutSession) fireTerminal() bool {
	if s.terminalFired {
		return false
	}
	s.terminalFired = true
	return true
}

func (s *CheckoutSession) touch() {
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()
}

// Events returns recorded domain events
func (s *CheckoutSession) Events() []*events.Event {
	return s.events
}

// ClearEvents clears recorded domain events
func (s *CheckoutSession) ClearEvents() {
	s.events = make([]*events.Event, 0)
}

func (s *CheckoutSession) recordEvent(event *events.Event) {
	s.events = append(s.events, event)
}

// Event Data Structures
type CheckoutStartedData struct {
	SessionID models.ID `json:"session_id"`
	Mode      string    `json:"mode"`
	IntentRef string    `json:"intent_ref,omitempty"`
}

type CardUpdatedData struct {
	SessionID models.ID `json:"session_id"`
	Field     string    `json:"field,omitempty"`
	Last4     string    `json:"last4,omitempty"`
	Complete  bool      `json:"complete"`
}

type RetryingData struct {
	SessionID models.ID `json:"session_id"`
}

type TokenizingData struct {
	SessionID models.ID `json:"session_id"`
	Attempt   int       `json:"attempt"`
	Mode      string    `json:"mode"`
}

type TokenizedData struct {
	SessionID models.ID `json:"session_id"`
	Attempt   int       `json:"attempt"`
	Handle    string    `json:"handle"`
}

type AwaitingConfirmationData struct {
	SessionID models.ID `json:"session_id"`
	IntentRef string    `json:"intent_ref,omitempty"`
	Handle    string    `json:"handle"`
}

type SucceededData struct {
	SessionID   models.ID `json:"session_id"`
	Handle      string    `json:"handle"`
	OrderID     string    `json:"order_id,omitempty"`
	Signature   string    `json:"signature,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

type FailedData struct {
	SessionID models.ID `json:"session_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	FailedAt  time.Time `json:"failed_at"`
}

type DisposedData struct {
	SessionID  models.ID `json:"session_id"`
	FinalState string    `json:"final_state"`
}

type DelegatedLaunchedData struct {
	SessionID    models.ID    `json:"session_id"`
	Amount       models.Money `json:"amount"`
	MerchantName string       `json:"merchant_name"`
}
