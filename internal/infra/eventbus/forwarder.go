package eventbus

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultBatchSize    = 100
)

// Forwarder reads committed events from the outbox table and forwards them
// to the event bus.
type Forwarder struct {
	db           *sql.DB
	rebind       func(string) string
	publisher    message.Publisher
	topic        string
	pollInterval time.Duration
	batchSize    int
	logger       watermill.LoggerAdapter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewForwarder creates a new outbox forwarder.
func NewForwarder(
	db *sql.DB,
	rebind func(string) string,
	publisher message.Publisher,
	logger watermill.LoggerAdapter,
) *Forwarder {
	return &Forwarder{
		db:           db,
		rebind:       rebind,
		publisher:    publisher,
		topic:        EmployeeEventsTopic,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		logger:       logger,
	}
}

// Start begins forwarding messages from the outbox.
func (f *Forwarder) Start(ctx context.Context) {
	f.ctx, f.cancel = context.WithCancel(ctx)
	f.wg.Add(1)
	go f.run()
	f.logger.Info("outbox forwarder started", nil)
}

// Stop stops the forwarder gracefully.
func (f *Forwarder) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
	f.wg.Wait()
	f.logger.Info("outbox forwarder stopped", nil)
}

func (f *Forwarder) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.forwardBatch()
		}
	}
}

// outboxRow is one stored outbox message.
type outboxRow struct {
	uuid     string
	payload  string
	metadata string
}

func (f *Forwarder) forwardBatch() {
	query := f.rebind(`
		SELECT uuid, payload, metadata FROM outbox_messages
		ORDER BY created_at ASC LIMIT ?`)

	rows, err := f.db.QueryContext(f.ctx, query, f.batchSize)
	if err != nil {
		f.logger.Error("failed to query outbox messages", err, nil)
		return
	}

	var batch []outboxRow
	for rows.Next() {
		var row outboxRow
		if err := rows.Scan(&row.uuid, &row.payload, &row.metadata); err != nil {
			f.logger.Error("failed to scan outbox message", err, nil)
			break
		}
		batch = append(batch, row)
	}
	if err := rows.Err(); err != nil {
		f.logger.Error("failed to read outbox messages", err, nil)
	}
	rows.Close()

	deleteQuery := f.rebind(`DELETE FROM outbox_messages WHERE uuid = ?`)

	for _, row := range batch {
		if err := f.forwardMessage(row); err != nil {
			f.logger.Error("failed to forward message", err, watermill.LogFields{
				"uuid": row.uuid,
			})
			continue
		}

		// Delete the message after successful forwarding
		if _, err := f.db.ExecContext(f.ctx, deleteQuery, row.uuid); err != nil {
			f.logger.Error("failed to delete outbox message", err, watermill.LogFields{
				"uuid": row.uuid,
			})
		}
	}
}

func (f *Forwarder) forwardMessage(row outboxRow) error {
	msg := message.NewMessage(row.uuid, []byte(row.payload))

	var metadata map[string]string
	if err := json.Unmarshal([]byte(row.metadata), &metadata); err != nil {
		return err
	}
	for k, v := range metadata {
		msg.Metadata.Set(k, v)
	}

	if err := f.publisher.Publish(f.topic, msg); err != nil {
		return err
	}

	f.logger.Debug("forwarded message", watermill.LogFields{
		"uuid":       row.uuid,
		"event_name": metadata["event_name"],
	})

	return nil
}
