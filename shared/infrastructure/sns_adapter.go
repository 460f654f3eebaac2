package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/pkg/errors"
)

// SNSPublisherAdapter exposes an SNSEventPublisher behind the events.Publisher
// interface, owning the AWS client setup. Works against LocalStack when
// AWS_ENDPOINT_URL is set.
type SNSPublisherAdapter struct {
	publisher *SNSEventPublisher
}

// NewSNSPublisherAdapter creates a publisher for the given topic
func NewSNSPublisherAdapter(topicArn string) (*SNSPublisherAdapter, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	return &SNSPublisherAdapter{
		publisher: NewSNSEventPublisher(sns.NewFromConfig(cfg), topicArn),
	}, nil
}

// Publish implements events.Publisher
func (p *SNSPublisherAdapter) Publish(ctx context.Context, evts ...*events.Event) error {
	return p.publisher.Publish(ctx, evts...)
}

// Close releases the publisher; the SNS client holds no connections to close
func (p *SNSPublisherAdapter) Close() error {
	return nil
}
