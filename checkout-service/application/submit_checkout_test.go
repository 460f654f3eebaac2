package application

import (
	"context"
	"testing"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/checkout-service/mocks"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testBilling() domain.BillingProfile {
	return domain.BillingProfile{
		Email: "buyer@example.com",
		Address: domain.BillingAddress{
			Line1:      "Av. Insurgentes Sur 1602",
			City:       "Mexico City",
			State:      "CDMX",
			PostalCode: "03940",
			Country:    "MX",
		},
	}
}

// collectingSession builds a raw-field session with a complete card, ready to
// submit
func collectingSession(t *testing.T) *domain.CheckoutSession {
	t.Helper()
	session, err := domain.StartCheckoutSession(domain.CheckoutModeRawField, testBilling(), "pi_test_123", "")
	assert.NoError(t, err)
	assert.NoError(t, session.UpdateCardField(domain.CardFieldNumber, "4242424242424242"))
	assert.NoError(t, session.UpdateCardField(domain.CardFieldExpMonth, "12"))
	assert.NoError(t, session.UpdateCardField(domain.CardFieldExpYear, "2030"))
	assert.NoError(t, session.UpdateCardField(domain.CardFieldCVC, "123"))
	session.ClearEvents()
	return session
}

func TestSubmitCheckout_Execute_Success(t *testing.T) {
	session := collectingSession(t)

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Times(3)
	mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Times(3)
	mockTokenizer.EXPECT().CreatePaymentMethod(mock.Anything, session.ID, mock.Anything, session.Billing).
		Return(domain.PaymentMethodHandle("pm_123"), nil).Once()
	mockConfirmer.EXPECT().ConfirmIntent(mock.Anything, "pi_test_123", domain.PaymentMethodHandle("pm_123")).
		Return(nil).Once()

	// tokenizing, then tokenized + awaiting, then succeeded
	mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.EventType == events.CheckoutTokenizingEvent
	})).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
		return evt.EventType == events.CheckoutSucceededEvent
	})).Return(nil).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.CheckoutStateSucceeded), result.State)
	assert.Equal(t, "pm_123", result.Handle)
	assert.True(t, session.Card.IsEmpty())
}

func TestSubmitCheckout_Execute_IncompleteCardMakesNoRemoteCall(t *testing.T) {
	session, err := domain.StartCheckoutSession(domain.CheckoutModeRawField, testBilling(), "pi_test_123", "")
	assert.NoError(t, err)
	assert.NoError(t, session.UpdateCardField(domain.CardFieldNumber, "4242424242424242"))
	session.ClearEvents()

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Once()
	// No tokenizer, confirmer or publisher expectations: validation fails first

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
	assert.Nil(t, result)
	assert.Equal(t, domain.CheckoutStateCollecting, session.State)
}

func TestSubmitCheckout_Execute_DoubleSubmitIsIdempotent(t *testing.T) {
	session := collectingSession(t)
	assert.NoError(t, session.BeginTokenization())
	session.ClearEvents()

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Once()
	// Exactly one request stays in flight: no second tokenization call

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.CheckoutStateTokenizing), result.State)
	assert.Equal(t, 1, session.Attempt)
}

func TestSubmitCheckout_Execute_ProcessorRejection(t *testing.T) {
	session := collectingSession(t)

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Times(2)
	mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Times(2)
	mockTokenizer.EXPECT().CreatePaymentMethod(mock.Anything, session.ID, mock.Anything, session.Billing).
		Return(domain.PaymentMethodHandle(""), domain.NewInvalidRequestError("invalid cvc", nil)).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(2)

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	// rejection is a state, not a transport error
	assert.NoError(t, err)
	assert.Equal(t, string(domain.CheckoutStateFailed), result.State)
	assert.Equal(t, string(domain.ErrorKindInvalidRequest), result.ErrorKind)
	assert.Equal(t, "invalid cvc", result.ErrorMessage)

	// the session can be repaired and resubmitted
	assert.NoError(t, session.UpdateCardField(domain.CardFieldCVC, "321"))
	assert.Equal(t, domain.CheckoutStateCollecting, session.State)
}

func TestSubmitCheckout_Execute_RetryAfterRejectionSucceeds(t *testing.T) {
	session := collectingSession(t)
	assert.NoError(t, session.BeginTokenization())
	assert.NoError(t, session.FailTokenization(session.Attempt, domain.NewInvalidRequestError("invalid cvc", nil)))
	assert.NoError(t, session.UpdateCardField(domain.CardFieldCVC, "321"))
	session.ClearEvents()

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Times(3)
	mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Times(3)
	mockTokenizer.EXPECT().CreatePaymentMethod(mock.Anything, session.ID, mock.Anything, session.Billing).
		Return(domain.PaymentMethodHandle("pm_456"), nil).Once()
	mockConfirmer.EXPECT().ConfirmIntent(mock.Anything, "pi_test_123", domain.PaymentMethodHandle("pm_456")).
		Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(2)
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.CheckoutStateSucceeded), result.State)
	assert.Equal(t, 2, session.Attempt)
}

func TestSubmitCheckout_Execute_DisposedMidFlight(t *testing.T) {
	session := collectingSession(t)

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Times(2)
	mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	// the hosting screen disposes the session while the request is in flight
	mockTokenizer.EXPECT().CreatePaymentMethod(mock.Anything, session.ID, mock.Anything, session.Billing).
		Run(func(ctx context.Context, sessionID models.ID, source domain.CardDataSource, billing domain.BillingProfile) {
			assert.NoError(t, session.Dispose())
		}).
		Return(domain.PaymentMethodHandle("pm_123"), nil).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.NoError(t, err)
	assert.NotEqual(t, string(domain.CheckoutStateSucceeded), result.State)
	assert.True(t, session.Handle.IsEmpty())
}

func TestSubmitCheckout_Execute_ConfirmationPending(t *testing.T) {
	session := collectingSession(t)

	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Times(3)
	mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Times(2)
	mockTokenizer.EXPECT().CreatePaymentMethod(mock.Anything, session.ID, mock.Anything, session.Billing).
		Return(domain.PaymentMethodHandle("pm_123"), nil).Once()
	mockConfirmer.EXPECT().ConfirmIntent(mock.Anything, "pi_test_123", domain.PaymentMethodHandle("pm_123")).
		Return(domain.ErrConfirmationPending).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
	mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{SessionID: session.ID.String()})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.CheckoutStateAwaitingConfirmation), result.State)
	assert.Equal(t, "pm_123", result.Handle)
}

func TestSubmitCheckout_Execute_SessionNotFound(t *testing.T) {
	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, nil).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{
		SessionID: "550e8400-e29b-41d4-a716-446655440000",
	})

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Nil(t, result)
}

func TestSubmitCheckout_Execute_RepositoryError(t *testing.T) {
	mockRepo := mocks.NewMockSessionRepository(t)
	mockTokenizer := mocks.NewMockTokenizationClient(t)
	mockConfirmer := mocks.NewMockIntentConfirmer(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).
		Return(nil, errors.New("store unavailable")).Once()

	useCase := NewSubmitCheckout(mockRepo, mockTokenizer, mockConfirmer, mockPublisher)

	result, err := useCase.Execute(context.Background(), &SubmitCheckoutCommand{
		SessionID: "550e8400-e29b-41d4-a716-446655440000",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find checkout session")
	assert.Nil(t, result)
}
