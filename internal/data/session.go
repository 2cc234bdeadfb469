package data

import (
	"context"
	"database/sql"
	"errors"

	"go-workforce/internal/domain"
	"go-workforce/internal/domain/event"

	"github.com/samber/lo"
)

// Compile-time interface checks
var (
	_ domain.Session        = (*Session)(nil)
	_ domain.SessionFactory = (*Data)(nil)
)

// Session is a change-tracking persistence session over one SQL
// transaction. Repositories write through its transaction and register
// every aggregate they insert, update or delete; the unit of work collects
// pending events from those aggregates before commit.
//
// Aggregates that were only read are never tracked, so events raised on an
// unmodified aggregate are silently dropped. Only true mutations propagate
// events.
type Session struct {
	tx      *sql.Tx
	data    *Data
	touched []event.Source
	seen    map[event.Source]struct{}
}

// NewSession begins a transaction and wraps it in a tracking session.
func (d *Data) NewSession(ctx context.Context) (domain.Session, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Session{
		tx:   tx,
		data: d,
		seen: make(map[event.Source]struct{}),
	}, nil
}

// Tx returns the session's transaction.
func (s *Session) Tx() *sql.Tx {
	return s.tx
}

// Track registers a mutated aggregate. First-touch order is preserved;
// tracking the same aggregate again is a no-op.
func (s *Session) Track(src event.Source) {
	if _, ok := s.seen[src]; ok {
		return
	}
	s.seen[src] = struct{}{}
	s.touched = append(s.touched, src)
}

// Commit durably persists pending changes.
func (s *Session) Commit(ctx context.Context) error {
	return s.tx.Commit()
}

// Rollback discards pending changes. Calling it after a failed commit is
// tolerated: the transaction is already finished then.
func (s *Session) Rollback(ctx context.Context) error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// EventSources returns the tracked aggregates that hold at least one
// pending event, in first-touch order.
func (s *Session) EventSources() []event.Source {
	return lo.Filter(s.touched, func(src event.Source, _ int) bool {
		return len(src.Events()) > 0
	})
}

// sessionFromContext returns the data-layer session carried by the
// context, or nil when the call is not part of a unit of work.
func sessionFromContext(ctx context.Context) *Session {
	s, _ := domain.SessionFromContext(ctx).(*Session)
	return s
}
