package domain

import (
	"context"

	"github.com/draftea/checkout-gateway/shared/models"
)

// TokenizationClient wraps the processor's payment method creation primitives.
// Both integration modes produce an opaque PaymentMethodHandle; failures come
// back as classified *Error values.
type TokenizationClient interface {
	// UpdateRawCardDetails pushes locally collected card data to the
	// processor's raw-card primitive. Raw-field mode only; surfaces field
	// rejections ahead of method creation.
	UpdateRawCardDetails(ctx context.Context, sessionID models.ID, card CardDetails) error

	// CreatePaymentMethod tokenizes the card data source together with the
	// billing profile
	CreatePaymentMethod(ctx context.Context, sessionID models.ID, source CardDataSource, billing BillingProfile) (PaymentMethodHandle, error)
}

// IntentConfirmer is the external intent-confirmation collaborator. A nil
// return means confirmed; ErrConfirmationPending means the outcome arrives
// asynchronously; a classified *Error means the confirmation failed.
type IntentConfirmer interface {
	ConfirmIntent(ctx context.Context, intentRef string, handle PaymentMethodHandle) error
}

// DelegatedLaunch references an in-flight provider-owned checkout flow
type DelegatedLaunch struct {
	ProviderRef string
	CheckoutURL string
}

// DelegatedCheckoutClient wraps a provider that owns the entire checkout UI.
// Launch registers exactly one callback pair; the client fires exactly one of
// them per launch and must not run business logic beyond forwarding.
type DelegatedCheckoutClient interface {
	Launch(ctx context.Context, sessionID models.ID, opts DelegatedCheckoutOptions, callbacks DelegatedCallbacks) (*DelegatedLaunch, error)

	// Deliver forwards a provider outcome to the callbacks registered for the
	// launch. It reports whether a registration was still active; a late
	// outcome for a released registration is dropped.
	Deliver(ctx context.Context, providerRef string, success *DelegatedSuccess, failure *DelegatedFailure) bool

	// Release clears the callback registration for a session, making any
	// subsequent delivery a no-op. Called on disposal.
	Release(sessionID models.ID)
}

// SessionRepository stores checkout sessions for the duration of a checkout
// attempt. Session state is in-memory and session-scoped; nothing is owned on
// disk.
type SessionRepository interface {
	Save(ctx context.Context, session *CheckoutSession) error
	FindByID(ctx context.Context, id models.ID) (*CheckoutSession, error)
	Delete(ctx context.Context, id models.ID) error
}

// BillingProfileProvider supplies the billing contact for a checkout session.
// Injected so hard-coded billing data never lives in the orchestration core.
type BillingProfileProvider interface {
	BillingProfile(ctx context.Context, customerRef string) (BillingProfile, error)
}
