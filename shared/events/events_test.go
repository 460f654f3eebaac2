package events

import (
	"testing"

	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		matches bool
	}{
		{"exact match", "checkout.succeeded", "checkout.succeeded", true},
		{"exact mismatch", "checkout.succeeded", "checkout.failed", false},
		{"single wildcard segment", "checkout.session.started", "checkout.session.*", true},
		{"wildcard segment mismatch", "checkout.session.started", "checkout.*.disposed", false},
		{"hash matches everything", "checkout.delegated.launched", "#", true},
		{"prefix pattern", "checkout.delegated.launched", "checkout.delegated.#", true},
		{"suffix pattern", "intent.confirmation.result", "#.result", true},
		{"segment count mismatch", "checkout.succeeded", "checkout.succeeded.extra", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.topic.Matches(tt.pattern))
		})
	}
}

func TestEvent_PayloadRoundTrip(t *testing.T) {
	type confirmationPayload struct {
		SessionID string `json:"session_id"`
		Confirmed bool   `json:"confirmed"`
	}

	aggregateID := models.GenerateUUID()
	event := NewEvent(aggregateID, IntentConfirmationResultEvent, confirmationPayload{
		SessionID: aggregateID.String(),
		Confirmed: true,
	})

	// events from the wire carry their payload as a decoded JSON map
	raw, err := event.ToJSON()
	assert.NoError(t, err)

	decoded, err := FromJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, IntentConfirmationResultEvent, decoded.EventType)

	var payload confirmationPayload
	assert.NoError(t, decoded.UnmarshalPayload(&payload))
	assert.Equal(t, aggregateID.String(), payload.SessionID)
	assert.True(t, payload.Confirmed)
}

func TestEvent_UnmarshalPayload_RequiresPointer(t *testing.T) {
	event := NewEvent(models.GenerateUUID(), CheckoutSucceededEvent, nil)

	var payload struct{}
	assert.ErrorIs(t, event.UnmarshalPayload(payload), ErrInvalidReceiver)
}

func TestMetadata(t *testing.T) {
	metadata := Metadata{"correlation": "abc"}

	v, ok := metadata.Get("correlation")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.False(t, metadata.Has("missing"))

	merged := metadata.Merge(Metadata{"hop": "sqs"})
	assert.True(t, merged.Matches(Metadata{"correlation": "abc", "hop": "sqs"}))
	assert.False(t, merged.Matches(Metadata{"correlation": "other"}))

	clone := merged.Clone()
	clone.Set("hop", "sns")
	assert.Equal(t, "sqs", merged["hop"])
}

func TestEvent_Clone(t *testing.T) {
	event := NewEvent(models.GenerateUUID(), CheckoutFailedEvent, nil).
		WithCorrelationID(models.GenerateUUID()).
		WithMetadata("origin", "test")

	clone := event.Clone()
	clone.Metadata.Set("origin", "changed")

	assert.Equal(t, event.ID, clone.ID)
	assert.Equal(t, event.CorrelationID, clone.CorrelationID)
	assert.Equal(t, "test", event.Metadata["origin"])
}
