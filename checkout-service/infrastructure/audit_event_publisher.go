package infrastructure

import (
	"context"
	"fmt"

	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
)

// AuditEventPublisher decorates a Publisher with an append to the event store.
// The store is an audit trail, not the source of truth. A failed append is
// logged and never blocks delivery.
type AuditEventPublisher struct {
	publisher  events.Publisher
	eventStore events.EventStore
}

// NewAuditEventPublisher creates a new AuditEventPublisher
func NewAuditEventPublisher(publisher events.Publisher, eventStore events.EventStore) *AuditEventPublisher {
	return &AuditEventPublisher{
		publisher:  publisher,
		eventStore: eventStore,
	}
}

// Publish appends the events to the audit trail and forwards them
func (p *AuditEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) > 0 {
		p.appendToTrail(ctx, evts)
	}
	return p.publisher.Publish(ctx, evts...)
}

func (p *AuditEventPublisher) appendToTrail(ctx context.Context, evts []*events.Event) {
	byAggregate := make(map[models.ID][]*events.Event)
	for _, event := range evts {
		byAggregate[event.AggregateID] = append(byAggregate[event.AggregateID], event)
	}

	for aggregateID, group := range byAggregate {
		existing, err := p.eventStore.GetEvents(ctx, aggregateID)
		if err != nil {
			fmt.Printf("Failed to read audit trail for %s: %v\n", aggregateID, err)
			continue
		}

		if err := p.eventStore.SaveEvents(ctx, aggregateID, group, len(existing)); err != nil {
			fmt.Printf("Failed to append audit trail for %s: %v\n", aggregateID, err)
		}
	}
}
