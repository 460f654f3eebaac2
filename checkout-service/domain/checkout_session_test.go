package domain

import (
	"testing"

	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/stretchr/testify/assert"
)

func validBilling() BillingProfile {
	return BillingProfile{
		Email: "buyer@example.com",
		Phone: "+525512345678",
		Address: BillingAddress{
			Line1:      "Av. Insurgentes Sur 1602",
			City:       "Mexico City",
			State:      "CDMX",
			PostalCode: "03940",
			Country:    "MX",
		},
	}
}

func newRawSession(t *testing.T) *CheckoutSession {
	t.Helper()
	session, err := StartCheckoutSession(CheckoutModeRawField, validBilling(), "pi_test_123", "")
	assert.NoError(t, err)
	session.ClearEvents()
	return session
}

func fillCard(t *testing.T, session *CheckoutSession) {
	t.Helper()
	assert.NoError(t, session.UpdateCardField(CardFieldNumber, "4242424242424242"))
	assert.NoError(t, session.UpdateCardField(CardFieldExpMonth, "12"))
	assert.NoError(t, session.UpdateCardField(CardFieldExpYear, "2030"))
	assert.NoError(t, session.UpdateCardField(CardFieldCVC, "123"))
}

func eventTypes(session *CheckoutSession) []string {
	types := make([]string, 0, len(session.Events()))
	for _, evt := range session.Events() {
		types = append(types, evt.EventType)
	}
	return types
}

func TestStartCheckoutSession(t *testing.T) {
	tests := []struct {
		name           string
		mode           CheckoutMode
		billing        BillingProfile
		intentRef      string
		hostedFieldRef string
		expectedError  string
	}{
		{
			name:      "raw field session",
			mode:      CheckoutModeRawField,
			billing:   validBilling(),
			intentRef: "pi_test_123",
		},
		{
			name:           "hosted field session",
			mode:           CheckoutModeHostedField,
			billing:        validBilling(),
			hostedFieldRef: "fld_abc",
		},
		{
			name: "delegated session needs no billing",
			mode: CheckoutModeDelegated,
		},
		{
			name:          "hosted field mode without reference",
			mode:          CheckoutModeHostedField,
			billing:       validBilling(),
			expectedError: "hosted field reference is required",
		},
		{
			name:          "unsupported mode",
			mode:          CheckoutMode("widget"),
			expectedError: "unsupported checkout mode",
		},
		{
			name:          "invalid billing profile",
			mode:          CheckoutModeRawField,
			billing:       BillingProfile{Email: "buyer@example.com"},
			expectedError: "billing address line1 is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := StartCheckoutSession(tt.mode, tt.billing, tt.intentRef, tt.hostedFieldRef)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, session)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, CheckoutStateIdle, session.State)
			assert.False(t, session.ID.IsEmpty())
			assert.Equal(t, []string{events.CheckoutSessionStartedEvent}, eventTypes(session))
		})
	}
}

func TestCheckoutSession_UpdateCardField(t *testing.T) {
	t.Run("first update moves idle to collecting", func(t *testing.T) {
		session := newRawSession(t)

		err := session.UpdateCardField(CardFieldNumber, "4242424242424242")

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateCollecting, session.State)
		assert.Equal(t, []string{events.CheckoutCardUpdatedEvent}, eventTypes(session))
	})

	t.Run("rejected outside raw field mode", func(t *testing.T) {
		session, err := StartCheckoutSession(CheckoutModeHostedField, validBilling(), "", "fld_abc")
		assert.NoError(t, err)

		err = session.UpdateCardField(CardFieldNumber, "4242424242424242")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "collected by the processor")
	})

	t.Run("rejected while tokenizing", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())

		err := session.UpdateCardField(CardFieldCVC, "999")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "while collecting")
	})

	t.Run("rejected after disposal", func(t *testing.T) {
		session := newRawSession(t)
		assert.NoError(t, session.Dispose())

		err := session.UpdateCardField(CardFieldNumber, "4242424242424242")

		assert.ErrorIs(t, err, ErrSessionDisposed)
	})
}

func TestCheckoutSession_BeginTokenization(t *testing.T) {
	t.Run("complete card advances to tokenizing", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		session.ClearEvents()

		err := session.BeginTokenization()

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateTokenizing, session.State)
		assert.Equal(t, 1, session.Attempt)
		assert.Equal(t, []string{events.CheckoutTokenizingEvent}, eventTypes(session))
	})

	t.Run("incomplete card stays collecting", func(t *testing.T) {
		session := newRawSession(t)
		assert.NoError(t, session.UpdateCardField(CardFieldNumber, "4242424242424242"))

		err := session.BeginTokenization()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete")
		assert.Equal(t, CheckoutStateCollecting, session.State)
		assert.Zero(t, session.Attempt)
	})

	t.Run("double submit is reported in flight", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())

		err := session.BeginTokenization()

		assert.ErrorIs(t, err, ErrSubmitInFlight)
		assert.Equal(t, 1, session.Attempt)
	})

	t.Run("submit without card data", func(t *testing.T) {
		session := newRawSession(t)

		err := session.BeginTokenization()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "collected card data")
	})

	t.Run("submit on disposed session", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.Dispose())

		err := session.BeginTokenization()

		assert.ErrorIs(t, err, ErrSessionDisposed)
	})
}

func TestCheckoutSession_CompleteTokenization(t *testing.T) {
	t.Run("stores handle and erases card data", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())
		session.ClearEvents()

		err := session.CompleteTokenization(session.Attempt, "pm_123")

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateAwaitingConfirmation, session.State)
		assert.Equal(t, PaymentMethodHandle("pm_123"), session.Handle)
		assert.True(t, session.Card.IsEmpty())
		assert.Equal(t, []string{
			events.CheckoutTokenizedEvent,
			events.CheckoutAwaitingConfirmationEvent,
		}, eventTypes(session))
	})

	t.Run("stale attempt is rejected", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())

		err := session.CompleteTokenization(session.Attempt-1, "pm_123")

		assert.ErrorIs(t, err, ErrStaleAttempt)
		assert.Equal(t, CheckoutStateTokenizing, session.State)
	})

	t.Run("empty handle is rejected", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())

		err := session.CompleteTokenization(session.Attempt, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty payment method handle")
	})

	t.Run("disposed mid flight discards the result", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())
		attempt := session.Attempt
		assert.NoError(t, session.Dispose())
		session.ClearEvents()

		err := session.CompleteTokenization(attempt, "pm_123")

		assert.ErrorIs(t, err, ErrSessionDisposed)
		assert.True(t, session.Handle.IsEmpty())
		assert.Empty(t, session.Events())
	})
}

func TestCheckoutSession_Confirmation(t *testing.T) {
	awaiting := func(t *testing.T) *CheckoutSession {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())
		assert.NoError(t, session.CompleteTokenization(session.Attempt, "pm_123"))
		session.ClearEvents()
		return session
	}

	t.Run("success terminates the session", func(t *testing.T) {
		session := awaiting(t)

		err := session.ConfirmationSucceeded()

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateSucceeded, session.State)
		assert.Equal(t, []string{events.CheckoutSucceededEvent}, eventTypes(session))
	})

	t.Run("failure terminates with classified error", func(t *testing.T) {
		session := awaiting(t)

		err := session.ConfirmationFailed(NewTokenizationError("card declined", nil))

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateFailed, session.State)
		assert.Equal(t, ErrorKindTokenization, session.LastError.Kind)
		assert.Equal(t, []string{events.CheckoutFailedEvent}, eventTypes(session))
	})

	t.Run("duplicate outcome does not fire a second terminal event", func(t *testing.T) {
		session := awaiting(t)
		assert.NoError(t, session.ConfirmationSucceeded())
		session.ClearEvents()

		err := session.ConfirmationSucceeded()

		assert.ErrorIs(t, err, ErrSessionTerminal)
		assert.Empty(t, session.Events())
	})

	t.Run("outcome for disposed session is rejected", func(t *testing.T) {
		session := awaiting(t)
		assert.NoError(t, session.Dispose())

		err := session.ConfirmationSucceeded()

		assert.ErrorIs(t, err, ErrSessionDisposed)
	})
}

func TestCheckoutSession_RetryAfterFailure(t *testing.T) {
	failWith := func(t *testing.T, cerr *Error) *CheckoutSession {
		session := newRawSession(t)
		fillCard(t, session)
		assert.NoError(t, session.BeginTokenization())
		assert.NoError(t, session.FailTokenization(session.Attempt, cerr))
		session.ClearEvents()
		return session
	}

	t.Run("field update re-arms a retryable failure", func(t *testing.T) {
		session := failWith(t, NewInvalidRequestError("invalid cvc", nil))

		err := session.UpdateCardField(CardFieldCVC, "321")

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateCollecting, session.State)
		assert.Nil(t, session.LastError)
		assert.Equal(t, []string{
			events.CheckoutRetryingEvent,
			events.CheckoutCardUpdatedEvent,
		}, eventTypes(session))
	})

	t.Run("second attempt fires a fresh terminal event", func(t *testing.T) {
		session := failWith(t, NewTokenizationError("card declined", nil))
		assert.NoError(t, session.UpdateCardField(CardFieldCVC, "321"))
		session.ClearEvents()

		assert.NoError(t, session.BeginTokenization())
		assert.Equal(t, 2, session.Attempt)
		assert.NoError(t, session.CompleteTokenization(2, "pm_456"))
		assert.NoError(t, session.ConfirmationSucceeded())

		assert.Contains(t, eventTypes(session), events.CheckoutSucceededEvent)
	})

	t.Run("auth failure is fatal", func(t *testing.T) {
		session := failWith(t, NewAuthError("invalid api key", nil))

		err := session.UpdateCardField(CardFieldCVC, "321")

		assert.ErrorIs(t, err, ErrSessionTerminal)
		assert.Equal(t, CheckoutStateFailed, session.State)
	})
}

func TestCheckoutSession_HostedField(t *testing.T) {
	newHosted := func(t *testing.T) *CheckoutSession {
		session, err := StartCheckoutSession(CheckoutModeHostedField, validBilling(), "pi_test_123", "fld_abc")
		assert.NoError(t, err)
		session.ClearEvents()
		return session
	}

	t.Run("completeness comes from the processor", func(t *testing.T) {
		session := newHosted(t)

		assert.False(t, session.IsComplete())
		assert.NoError(t, session.SetHostedComplete(true))
		assert.True(t, session.IsComplete())
	})

	t.Run("card source carries the field reference", func(t *testing.T) {
		session := newHosted(t)

		source := session.CardSource()

		assert.Equal(t, CardDataSourceHostedField, source.Type)
		assert.Equal(t, "fld_abc", source.HostedFieldSource.Ref)
	})

	t.Run("hosted completeness rejected in raw mode", func(t *testing.T) {
		session := newRawSession(t)

		err := session.SetHostedComplete(true)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "computed locally")
	})
}

func TestCheckoutSession_Delegated(t *testing.T) {
	opts := DelegatedCheckoutOptions{
		Amount:       models.NewMoney(50000, "MXN"),
		MerchantName: "Draftea",
	}

	newDelegated := func(t *testing.T) *CheckoutSession {
		session, err := StartCheckoutSession(CheckoutModeDelegated, BillingProfile{}, "", "")
		assert.NoError(t, err)
		session.ClearEvents()
		return session
	}

	t.Run("launch moves to awaiting confirmation", func(t *testing.T) {
		session := newDelegated(t)

		err := session.BeginDelegated(opts)

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateAwaitingConfirmation, session.State)
		assert.Equal(t, []string{events.DelegatedCheckoutLaunchedEvent}, eventTypes(session))
	})

	t.Run("launch rejected outside delegated mode", func(t *testing.T) {
		session := newRawSession(t)

		err := session.BeginDelegated(opts)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not started in delegated mode")
	})

	t.Run("launch is once per session", func(t *testing.T) {
		session := newDelegated(t)
		assert.NoError(t, session.BeginDelegated(opts))

		err := session.BeginDelegated(opts)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only be launched once")
	})

	t.Run("invalid options rejected before launch", func(t *testing.T) {
		session := newDelegated(t)

		err := session.BeginDelegated(DelegatedCheckoutOptions{
			Amount:       models.NewMoney(0, "MXN"),
			MerchantName: "Draftea",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be positive")
		assert.Equal(t, CheckoutStateIdle, session.State)
	})

	t.Run("success callback terminates the session", func(t *testing.T) {
		session := newDelegated(t)
		assert.NoError(t, session.BeginDelegated(opts))
		session.ClearEvents()

		err := session.CompleteDelegated(DelegatedSuccess{
			PaymentID: "pay_123",
			OrderID:   "order_456",
			Signature: "sig_789",
		})

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateSucceeded, session.State)
		assert.Equal(t, PaymentMethodHandle("pay_123"), session.Handle)
	})

	t.Run("failure callback terminates the session", func(t *testing.T) {
		session := newDelegated(t)
		assert.NoError(t, session.BeginDelegated(opts))

		err := session.FailDelegated(DelegatedFailure{Code: "PAYMENT_FAILED", Description: "payment declined"})

		assert.NoError(t, err)
		assert.Equal(t, CheckoutStateFailed, session.State)
		assert.Equal(t, "payment declined", session.LastError.Message)
	})

	t.Run("late callback after disposal is rejected", func(t *testing.T) {
		session := newDelegated(t)
		assert.NoError(t, session.BeginDelegated(opts))
		assert.NoError(t, session.Dispose())

		err := session.CompleteDelegated(DelegatedSuccess{PaymentID: "pay_123"})

		assert.ErrorIs(t, err, ErrSessionDisposed)
		assert.NotEqual(t, CheckoutStateSucceeded, session.State)
	})
}

func TestCheckoutSession_Dispose(t *testing.T) {
	t.Run("erases card data", func(t *testing.T) {
		session := newRawSession(t)
		fillCard(t, session)
		session.ClearEvents()

		err := session.Dispose()

		assert.NoError(t, err)
		assert.True(t, session.IsDisposed())
		assert.True(t, session.Card.IsEmpty())
		assert.Equal(t, []string{events.CheckoutSessionDisposedEvent}, eventTypes(session))
	})

	t.Run("disposing twice is a no-op", func(t *testing.T) {
		session := newRawSession(t)
		assert.NoError(t, session.Dispose())
		session.ClearEvents()

		err := session.Dispose()

		assert.NoError(t, err)
		assert.Empty(t, session.Events())
	})
}
