package eventbus

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/domain/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwarder_ForwardsAndDeletes(t *testing.T) {
	d := newTestData(t)
	bus := NewEventBus(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscriber().Subscribe(ctx, EmployeeEventsTopic)
	require.NoError(t, err)

	store := NewOutboxStore(d)
	tx, err := d.DB().Begin()
	require.NoError(t, err)
	e := event.NewEmployeeHired("emp-1", "Alice", "Engineer", 90000)
	require.NoError(t, store.StoreInTx(context.Background(), tx, e))
	require.NoError(t, tx.Commit())

	forwarder := NewForwarder(d.DB(), d.Rebind, bus.Publisher(), watermill.NopLogger{})
	forwarder.Start(context.Background())
	defer forwarder.Stop()

	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		require.NoError(t, err)
		assert.Equal(t, "employee.hired", envelope.EventName)
		assert.Equal(t, "emp-1", envelope.AggregateID)
		assert.Equal(t, "employee.hired", msg.Metadata.Get("event_name"))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for forwarded message")
	}

	assert.Eventually(t, func() bool {
		var n int
		if err := d.DB().QueryRow(`SELECT COUNT(1) FROM outbox_messages`).Scan(&n); err != nil {
			return false
		}
		return n == 0
	}, 2*time.Second, 50*time.Millisecond, "forwarded rows must be deleted")
}

func TestForwarder_StopIsIdempotentWithoutStart(t *testing.T) {
	d := newTestData(t)
	bus := NewEventBus(watermill.NopLogger{})
	defer bus.Close()

	forwarder := NewForwarder(d.DB(), d.Rebind, bus.Publisher(), watermill.NopLogger{})
	assert.NotPanics(t, forwarder.Stop)
}
