package eventbus

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-workforce/internal/data"
	"go-workforce/internal/domain/event"
)

// OutboxStore writes domain events to the outbox table. Rows are written
// inside the business transaction (by a pre-commit handler), so an event
// reaches the outbox if and only if its unit of work commits. The
// Forwarder later relays stored rows to the event bus.
type OutboxStore struct {
	rebind func(string) string
}

// NewOutboxStore creates a new outbox store.
func NewOutboxStore(d *data.Data) *OutboxStore {
	return &OutboxStore{rebind: d.Rebind}
}

// StoreInTx stores one event in the outbox table using the provided
// transaction.
func (s *OutboxStore) StoreInTx(ctx context.Context, tx *sql.Tx, e event.Event) error {
	msg, err := EventToMessage(e)
	if err != nil {
		return err
	}

	metadata := make(map[string]string, len(msg.Metadata))
	for k, v := range msg.Metadata {
		metadata[k] = v
	}
	meta, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	query := s.rebind(`
		INSERT INTO outbox_messages (uuid, payload, metadata, created_at)
		VALUES (?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, query, msg.UUID, string(msg.Payload), string(meta), time.Now().UTC())
	return err
}
