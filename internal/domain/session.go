package domain

import (
	"context"

	"go-workforce/internal/domain/event"
)

// Session is the persistence context a unit of work drives. Implementations
// track which aggregates were mutated during the body so their pending
// events can be collected before commit.
type Session interface {
	// Commit durably persists pending changes.
	Commit(ctx context.Context) error
	// Rollback discards pending changes. Best-effort; implementations
	// should tolerate being called after a failed commit.
	Rollback(ctx context.Context) error
	// EventSources returns the aggregates that were inserted, updated or
	// deleted during the body and currently hold at least one pending
	// event, in first-touch order. Aggregates that were only read are
	// excluded even if they hold events; only true mutations propagate.
	EventSources() []event.Source
}

// SessionFactory opens a fresh Session per unit of work execution.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

type sessionKey struct{}

// NewSessionContext returns a context carrying the session. Repositories
// use it to write through the session's transaction.
func NewSessionContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext retrieves the session from context, or nil when the
// call is not running inside a unit of work.
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
