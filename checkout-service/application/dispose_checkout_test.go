package application

import (
	"context"
	"testing"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/checkout-service/mocks"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDisposeCheckout_Execute(t *testing.T) {
	t.Run("erases card data and releases the delegated registration", func(t *testing.T) {
		session := collectingSession(t)

		mockRepo := mocks.NewMockSessionRepository(t)
		mockDelegated := mocks.NewMockDelegatedCheckoutClient(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Once()
		mockDelegated.EXPECT().Release(session.ID).Once()
		mockRepo.EXPECT().Save(mock.Anything, session).Return(nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.EventType == events.CheckoutSessionDisposedEvent
		})).Return(nil).Once()

		useCase := NewDisposeCheckout(mockRepo, mockDelegated, mockPublisher)

		err := useCase.Execute(context.Background(), &DisposeCheckoutCommand{SessionID: session.ID.String()})

		assert.NoError(t, err)
		assert.True(t, session.IsDisposed())
		assert.Empty(t, session.Card.Last4())
	})

	t.Run("disposing twice is a no-op", func(t *testing.T) {
		session := collectingSession(t)
		assert.NoError(t, session.Dispose())
		session.ClearEvents()

		mockRepo := mocks.NewMockSessionRepository(t)
		mockDelegated := mocks.NewMockDelegatedCheckoutClient(t)
		mockPublisher := mocks.NewMockPublisher(t)

		// second disposal changes nothing: no release, no save, no publish
		mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Once()

		useCase := NewDisposeCheckout(mockRepo, mockDelegated, mockPublisher)

		err := useCase.Execute(context.Background(), &DisposeCheckoutCommand{SessionID: session.ID.String()})

		assert.NoError(t, err)
	})

	t.Run("session not found", func(t *testing.T) {
		mockRepo := mocks.NewMockSessionRepository(t)
		mockDelegated := mocks.NewMockDelegatedCheckoutClient(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByID(mock.Anything, mock.Anything).Return(nil, nil).Once()

		useCase := NewDisposeCheckout(mockRepo, mockDelegated, mockPublisher)

		err := useCase.Execute(context.Background(), &DisposeCheckoutCommand{
			SessionID: "550e8400-e29b-41d4-a716-446655440000",
		})

		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("repository save error", func(t *testing.T) {
		session := collectingSession(t)

		mockRepo := mocks.NewMockSessionRepository(t)
		mockDelegated := mocks.NewMockDelegatedCheckoutClient(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByID(mock.Anything, session.ID).Return(session, nil).Once()
		mockDelegated.EXPECT().Release(session.ID).Once()
		mockRepo.EXPECT().Save(mock.Anything, session).Return(errors.New("store unavailable")).Once()

		useCase := NewDisposeCheckout(mockRepo, mockDelegated, mockPublisher)

		err := useCase.Execute(context.Background(), &DisposeCheckoutCommand{SessionID: session.ID.String()})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save checkout session")
	})
}
