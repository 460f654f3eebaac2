package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

// SNS caps PublishBatch at ten entries
const snsMaxBatchSize = 10

type snsEnvelope struct {
	ID        string          `json:"id"`
	Metadata  events.Metadata `json:"metadata"`
	Topic     string          `json:"topic"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// SNSEventPublisher fans checkout events out to an SNS topic. Events are
// published in parallel batches; a partially failed batch is reported as an
// error so callers never silently lose an event.
type SNSEventPublisher struct {
	client   *sns.Client
	topicArn string
}

// NewSNSEventPublisher creates a new SNSEventPublisher
func NewSNSEventPublisher(client *sns.Client, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
	}
}

// Publish publishes the events to the configured topic
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	gr, ctx := errgroup.WithContext(ctx)

	for start := 0; start < len(evts); start += snsMaxBatchSize {
		end := start + snsMaxBatchSize
		if end > len(evts) {
			end = len(evts)
		}
		batch := evts[start:end]
		gr.Go(func() error {
			return p.publishBatch(ctx, batch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) publishBatch(ctx context.Context, batch []*events.Event) error {
	entries := make([]types.PublishBatchRequestEntry, len(batch))
	for i, event := range batch {
		entry, err := toBatchEntry(event)
		if err != nil {
			return err
		}
		entries[i] = entry
	}

	res, err := p.client.PublishBatch(ctx, &sns.PublishBatchInput{
		TopicArn:                   &p.topicArn,
		PublishBatchRequestEntries: entries,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	if len(res.Failed) > 0 {
		failed := res.Failed[0]
		return errors.Errorf("SNS rejected %d of %d events, first: %s %s",
			len(res.Failed), len(batch), aws.ToString(failed.Id), aws.ToString(failed.Message))
	}

	return nil
}

func toBatchEntry(event *events.Event) (types.PublishBatchRequestEntry, error) {
	payload, err := event.MarshalPayload()
	if err != nil {
		return types.PublishBatchRequestEntry{}, errors.Wrap(err, "failed to marshal payload")
	}

	body, err := json.Marshal(&snsEnvelope{
		ID:        event.ID.String(),
		Metadata:  event.Metadata,
		Topic:     string(event.Topic),
		Payload:   payload,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		return types.PublishBatchRequestEntry{}, errors.Wrap(err, "failed to marshal envelope")
	}

	attrs := map[string]types.MessageAttributeValue{
		"topic": {
			DataType:    aws.String("String"),
			StringValue: aws.String(string(event.Topic)),
		},
	}
	for k, v := range event.Metadata {
		// delivery bookkeeping from a previous hop stays off the bus
		if k == SQSMessageIDKey || k == SQSReceiptHandleKey {
			continue
		}
		attrs[k] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	return types.PublishBatchRequestEntry{
		Id:                aws.String(event.ID.String()),
		Message:           aws.String(string(body)),
		MessageAttributes: attrs,
	}, nil
}
