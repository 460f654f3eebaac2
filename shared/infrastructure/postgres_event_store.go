package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/draftea/checkout-gateway/shared/events"
	"github.com/draftea/checkout-gateway/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// PostgresEventStore persists the checkout audit trail. Each session's events
// form an append-only stream guarded by an optimistic version check, so a
// concurrent append for the same session fails instead of interleaving.
//
// Schema:
//
//	CREATE TABLE checkout_events (
//	    id             UUID PRIMARY KEY,
//	    aggregate_id   UUID NOT NULL,
//	    event_type     TEXT NOT NULL,
//	    version        TEXT NOT NULL,
//	    data           JSONB NOT NULL,
//	    metadata       JSONB NOT NULL,
//	    timestamp      TIMESTAMPTZ NOT NULL,
//	    correlation_id TEXT NOT NULL DEFAULT '',
//	    stream_version INT NOT NULL,
//	    UNIQUE (aggregate_id, stream_version)
//	);
type PostgresEventStore struct {
	db *sqlx.DB
}

// NewPostgresEventStore creates a new PostgresEventStore
func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

type eventRow struct {
	ID            string    `db:"id"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
	StreamVersion int       `db:"stream_version"`
}

const insertEventQuery = `
	INSERT INTO checkout_events (
		id, aggregate_id, event_type, version, data, metadata,
		timestamp, correlation_id, stream_version
	) VALUES (
		:id, :aggregate_id, :event_type, :version, :data, :metadata,
		:timestamp, :correlation_id, :stream_version
	)`

const selectEventColumns = `
	SELECT id, aggregate_id, event_type, version, data, metadata,
	       timestamp, correlation_id, stream_version
	FROM checkout_events`

// SaveEvents appends the events to the session's stream. expectedVersion is
// the stream length the caller observed; a mismatch means a concurrent append
// won.
func (es *PostgresEventStore) SaveEvents(ctx context.Context, aggregateID models.ID, evts []*events.Event, expectedVersion int) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(stream_version), 0) FROM checkout_events WHERE aggregate_id = $1",
		aggregateID.String())
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "failed to read stream version")
	}

	if currentVersion != expectedVersion {
		return errors.Errorf("concurrent append to stream %s: expected version %d, found %d",
			aggregateID, expectedVersion, currentVersion)
	}

	for i, event := range evts {
		row, err := newEventRow(event, currentVersion+i+1)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertEventQuery, row); err != nil {
			return errors.Wrap(err, "failed to insert event")
		}
	}

	return tx.Commit()
}

// GetEvents returns the session's stream in append order
func (es *PostgresEventStore) GetEvents(ctx context.Context, aggregateID models.ID) ([]*events.Event, error) {
	var rows []eventRow
	err := es.db.SelectContext(ctx, &rows,
		selectEventColumns+" WHERE aggregate_id = $1 ORDER BY stream_version ASC",
		aggregateID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to read event stream")
	}

	return decodeEventRows(rows)
}

// GetEventsByType pages through events of one type across all sessions
func (es *PostgresEventStore) GetEventsByType(ctx context.Context, eventType string, offset, limit int) ([]*events.Event, error) {
	var rows []eventRow
	err := es.db.SelectContext(ctx, &rows,
		selectEventColumns+" WHERE event_type = $1 ORDER BY timestamp ASC LIMIT $2 OFFSET $3",
		eventType, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read events by type")
	}

	return decodeEventRows(rows)
}

func newEventRow(event *events.Event, streamVersion int) (*eventRow, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	correlationID := ""
	if event.CorrelationID != "" {
		correlationID = event.CorrelationID.String()
	}

	return &eventRow{
		ID:            event.ID.String(),
		AggregateID:   event.AggregateID.String(),
		EventType:     event.EventType,
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: correlationID,
		StreamVersion: streamVersion,
	}, nil
}

func decodeEventRows(rows []eventRow) ([]*events.Event, error) {
	decoded := make([]*events.Event, len(rows))
	for i := range rows {
		event, err := decodeEventRow(&rows[i])
		if err != nil {
			return nil, err
		}
		decoded[i] = event
	}
	return decoded, nil
}

func decodeEventRow(row *eventRow) (*events.Event, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid event ID")
	}

	aggregateID, err := models.NewID(row.AggregateID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid aggregate ID")
	}

	var data interface{}
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event data")
	}

	var rawMetadata map[string]interface{}
	if err := json.Unmarshal(row.Metadata, &rawMetadata); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event metadata")
	}

	metadata := make(events.Metadata)
	for k, v := range rawMetadata {
		if str, ok := v.(string); ok {
			metadata.Set(k, str)
		} else {
			metadata.Set(k, fmt.Sprintf("%v", v))
		}
	}

	var correlationID models.ID
	if row.CorrelationID != "" {
		correlationID, err = models.NewID(row.CorrelationID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid correlation ID")
		}
	}

	topic, _ := events.NewTopic(row.EventType)

	return &events.Event{
		ID:            id,
		AggregateID:   aggregateID,
		Topic:         topic,
		EventType:     row.EventType,
		Version:       row.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     row.Timestamp,
		CorrelationID: correlationID,
	}, nil
}
