package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
)

// SQSSubscriberAdapter exposes an SQSEventSubscriber behind the
// events.Subscriber interface. The queue carries every checkout topic, so the
// eventType argument to Subscribe is ignored; routing happens in the handler.
type SQSSubscriberAdapter struct {
	subscriber *SQSEventSubscriber
	queueURL   string
}

// NewSQSSubscriberAdapter creates an adapter for the given queue. The
// underlying subscriber is built lazily on Subscribe, once the handler is
// known.
func NewSQSSubscriberAdapter(queueURL string) (*SQSSubscriberAdapter, error) {
	if queueURL == "" {
		return nil, errors.New("queue URL is required")
	}
	return &SQSSubscriberAdapter{queueURL: queueURL}, nil
}

type subscribedHandler struct {
	handler events.EventHandler
}

func (a *subscribedHandler) HandlerID() string {
	if identified, ok := a.handler.(interface{ HandlerID() string }); ok {
		return identified.HandlerID()
	}
	return "event-handler"
}

func (a *subscribedHandler) Handle(ctx context.Context, event *events.Event) error {
	return a.handler.Handle(ctx, event)
}

// Subscribe implements events.Subscriber
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	if s.subscriber != nil {
		return errors.New("subscriber is already running")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load AWS config")
	}

	s.subscriber = NewSQSEventSubscriber(
		sqs.NewFromConfig(cfg),
		s.queueURL,
		&subscribedHandler{handler: handler},
	)

	if err := s.subscriber.Start(ctx); err != nil {
		s.subscriber = nil
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	return nil
}

// Close stops the subscriber and waits for in-flight handlers
func (s *SQSSubscriberAdapter) Close() error {
	if s.subscriber == nil {
		return nil
	}

	if err := s.subscriber.Stop(context.Background()); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.subscriber = nil
	return nil
}
