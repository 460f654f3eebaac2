package infrastructure

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
)

// Delivery metadata keys attached to consumed events. The publisher strips
// them before forwarding so they never leak back onto the bus.
const (
	SQSMessageIDKey     = "sqs_message_id"
	SQSReceiptHandleKey = "sqs_receipt_handle"
)

// EventHandler processes a consumed event. HandlerID identifies the consumer
// for visibility-timeout bookkeeping and diagnostics.
type EventHandler interface {
	HandlerID() string
	Handle(ctx context.Context, event *events.Event) error
}

// EventHandlerFunc adapts a function to the EventHandler interface
type EventHandlerFunc struct {
	id string
	fn func(ctx context.Context, event *events.Event) error
}

func NewEventHandlerFunc(id string, fn func(ctx context.Context, event *events.Event) error) *EventHandlerFunc {
	return &EventHandlerFunc{
		id: id,
		fn: fn,
	}
}

func (h *EventHandlerFunc) HandlerID() string {
	return h.id
}

func (h *EventHandlerFunc) Handle(ctx context.Context, event *events.Event) error {
	return h.fn(ctx, event)
}

type sqsDelivery struct {
	message types.Message
	event   *events.Event
}

// SQSEventSubscriber consumes a queue with a pool of pollers feeding a pool
// of workers. A worker handles the event and settles the message itself:
// deleted on success, visibility extended on failure so redelivery backs off
// as the receive count grows.
type SQSEventSubscriber struct {
	client   *sqs.Client
	queueURL string
	handler  EventHandler
	options  *sqsSubscriberOptions

	mux        sync.Mutex
	deliveries chan *sqsDelivery
	cancel     context.CancelFunc
	done       sync.WaitGroup
	running    atomic.Bool
}

type sqsSubscriberOptions struct {
	workers              int
	pollers              int
	maxMessages          int32
	waitTimeSeconds      int32
	visibilityTimeout    int32
	emptyReceiveDelay    time.Duration
	receiveErrorDelay    time.Duration
	backoffReceiveRange  int32
	backoffTimeoutStep   int32
	maxVisibilityTimeout int32
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithPollers(pollers int) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.pollers = pollers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

// NewSQSEventSubscriber creates a subscriber for the given queue. Defaults
// are sized for checkout confirmation traffic: low volume, latency-sensitive.
func NewSQSEventSubscriber(
	client *sqs.Client,
	queueURL string,
	handler EventHandler,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		workers:              10,
		pollers:              1,
		maxMessages:          5,
		waitTimeSeconds:      15,
		visibilityTimeout:    30,
		emptyReceiveDelay:    5 * time.Second,
		receiveErrorDelay:    20 * time.Second,
		backoffReceiveRange:  3,
		backoffTimeoutStep:   30,
		maxVisibilityTimeout: 900,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:   client,
		queueURL: queueURL,
		handler:  handler,
		options:  options,
	}
}

// Start spins up the poller and worker pools. Starting a running subscriber
// is a no-op.
func (s *SQSEventSubscriber) Start(ctx context.Context) error {
	if s.handler == nil {
		return errors.New("subscriber requires a handler")
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.deliveries = make(chan *sqsDelivery, s.options.maxMessages)

	for i := 0; i < s.options.workers; i++ {
		s.done.Add(1)
		go s.runWorker(ctx)
	}
	for i := 0; i < s.options.pollers; i++ {
		s.done.Add(1)
		go s.runPoller(ctx)
	}

	return nil
}

// Stop cancels the pools and waits for in-flight handlers to return
func (s *SQSEventSubscriber) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mux.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mux.Unlock()

	finished := make(chan struct{})
	go func() {
		s.done.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SQSEventSubscriber) runPoller(ctx context.Context) {
	defer s.done.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		received, err := s.poll(ctx)
		switch {
		case err != nil:
			sleepCtx(ctx, s.options.receiveErrorDelay)
		case received == 0:
			sleepCtx(ctx, s.options.emptyReceiveDelay)
		}
	}
}

func (s *SQSEventSubscriber) poll(ctx context.Context) (int, error) {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		AttributeNames: []types.QueueAttributeName{
			"ApproximateReceiveCount",
		},
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to receive messages")
	}

	for _, message := range output.Messages {
		event, err := decodeSQSMessage(message)
		if err != nil {
			// malformed body, settle on failure via redrive policy
			continue
		}

		select {
		case s.deliveries <- &sqsDelivery{message: message, event: event}:
		case <-ctx.Done():
			return len(output.Messages), ctx.Err()
		}
	}

	return len(output.Messages), nil
}

func decodeSQSMessage(message types.Message) (*events.Event, error) {
	var event *events.Event
	if err := json.Unmarshal([]byte(*message.Body), &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode message body")
	}
	if event == nil {
		return nil, errors.New("empty message body")
	}

	if event.Metadata == nil {
		event.Metadata = make(events.Metadata)
	}
	event.Metadata.Set(SQSMessageIDKey, aws.ToString(message.MessageId))
	if message.ReceiptHandle != nil {
		event.Metadata.Set(SQSReceiptHandleKey, *message.ReceiptHandle)
	}
	for k, v := range message.MessageAttributes {
		if v.StringValue != nil {
			event.Metadata.Set(k, *v.StringValue)
		}
	}

	return event, nil
}

func (s *SQSEventSubscriber) runWorker(ctx context.Context) {
	defer s.done.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case delivery := <-s.deliveries:
			if delivery == nil {
				continue
			}
			err := s.handler.Handle(ctx, delivery.event)
			s.settle(ctx, delivery, err)
		}
	}
}

// settle deletes a handled message, or pushes its visibility out so the next
// redelivery waits longer the more often it has failed
func (s *SQSEventSubscriber) settle(ctx context.Context, delivery *sqsDelivery, handleErr error) {
	if handleErr == nil {
		_, _ = s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      &s.queueURL,
			ReceiptHandle: delivery.message.ReceiptHandle,
		})
		return
	}

	receiveCount, err := strconv.Atoi(delivery.message.Attributes["ApproximateReceiveCount"])
	if err != nil {
		receiveCount = 1
	}

	timeout := s.options.visibilityTimeout +
		(int32(receiveCount)/s.options.backoffReceiveRange)*s.options.backoffTimeoutStep
	if timeout > s.options.maxVisibilityTimeout {
		timeout = s.options.maxVisibilityTimeout
	}

	_, _ = s.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          &s.queueURL,
		ReceiptHandle:     delivery.message.ReceiptHandle,
		VisibilityTimeout: timeout,
	})
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
