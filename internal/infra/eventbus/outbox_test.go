package eventbus

import (
	"context"
	"encoding/json"
	"testing"

	"go-workforce/internal/conf"
	"go-workforce/internal/data"
	"go-workforce/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestData opens a fresh in-memory database per test.
func newTestData(t *testing.T) *data.Data {
	t.Helper()
	c := &conf.Data{
		Database: &conf.Database{
			Driver: "sqlite3",
			Source: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1",
		},
	}
	d, cleanup, err := data.NewData(c, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return d
}

func countOutboxRows(t *testing.T, d *data.Data) int {
	t.Helper()
	var n int
	require.NoError(t, d.DB().QueryRow(`SELECT COUNT(1) FROM outbox_messages`).Scan(&n))
	return n
}

func TestOutboxStore_StoreInTx(t *testing.T) {
	d := newTestData(t)
	store := NewOutboxStore(d)

	tx, err := d.DB().Begin()
	require.NoError(t, err)

	e := event.NewEmployeeHired("emp-1", "Alice", "Engineer", 90000)
	require.NoError(t, store.StoreInTx(context.Background(), tx, e))
	require.NoError(t, tx.Commit())

	var payload, metadata string
	err = d.DB().QueryRow(`SELECT payload, metadata FROM outbox_messages WHERE uuid = ?`, e.EventID()).
		Scan(&payload, &metadata)
	require.NoError(t, err)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))
	assert.Equal(t, "employee.hired", envelope.EventName)
	assert.Equal(t, "emp-1", envelope.AggregateID)

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(metadata), &meta))
	assert.Equal(t, "employee.hired", meta["event_name"])
	assert.Equal(t, "emp-1", meta["aggregate_id"])
}

func TestOutboxStore_RowRidesTheTransaction(t *testing.T) {
	d := newTestData(t)
	store := NewOutboxStore(d)

	tx, err := d.DB().Begin()
	require.NoError(t, err)

	e := event.NewEmployeeHired("emp-1", "Alice", "Engineer", 90000)
	require.NoError(t, store.StoreInTx(context.Background(), tx, e))
	require.NoError(t, tx.Rollback())

	assert.Equal(t, 0, countOutboxRows(t, d), "rolled back outbox rows must vanish")
}
