package domain

import (
	"context"
	"errors"

	"go-workforce/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// Body is the caller-supplied mutation logic of one transactional episode.
// It receives a context carrying the open session and mutates aggregates
// through repositories, raising zero or more domain events as a side effect.
type Body func(ctx context.Context) error

// UnitOfWork orchestrates one transactional episode: it runs the body
// against a fresh session, collects events from all touched aggregates,
// dispatches pre-commit handlers, commits, then dispatches post-commit
// handlers. Exactly one Commit or one Rollback happens per Execute call,
// never both, never neither.
//
// A UnitOfWork holds no state between Execute calls and may be shared, but
// executions against one session are never concurrent: each call opens its
// own session and runs on a single logical thread of control.
type UnitOfWork struct {
	sessions SessionFactory
	registry *event.Registry
	log      *log.Helper
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(sessions SessionFactory, registry *event.Registry, logger log.Logger) *UnitOfWork {
	return &UnitOfWork{
		sessions: sessions,
		registry: registry,
		log:      log.NewHelper(logger),
	}
}

// Execute runs one unit of work.
//
// If the body fails, the session is rolled back and the body's error is
// returned; no events are collected and no handler runs. If a pre-commit
// handler fails, the session is rolled back, remaining pre-commit handlers
// and all post-commit handlers are skipped, and the *event.HandlerError is
// returned. If the commit fails, the session is rolled back and the error
// wraps ErrCommitFailed. Post-commit handler failures are logged and never
// affect the returned outcome.
//
// Every event source collected from the session is cleared exactly once,
// regardless of how Execute terminates after collection. A context
// cancelled during the body or pre-commit dispatch triggers rollback;
// cancellation during post-commit dispatch is an isolated handler concern.
func (u *UnitOfWork) Execute(ctx context.Context, body Body) error {
	sess, err := u.sessions.NewSession(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sess.Rollback(ctx)
			panic(p)
		}
	}()

	if err := body(NewSessionContext(ctx, sess)); err != nil {
		return u.fail(ctx, sess, err)
	}
	if err := ctx.Err(); err != nil {
		return u.fail(ctx, sess, err)
	}

	sources := sess.EventSources()
	events := lo.FlatMap(sources, func(s event.Source, _ int) []event.Event {
		return s.Events()
	})
	defer func() {
		for _, s := range sources {
			s.ClearEvents()
		}
	}()

	for _, e := range events {
		if err := u.registry.DispatchPreCommit(ctx, e); err != nil {
			return u.fail(ctx, sess, err)
		}
	}

	if err := sess.Commit(ctx); err != nil {
		return u.fail(ctx, sess, errors.Join(ErrCommitFailed, err))
	}

	for _, e := range events {
		u.registry.DispatchPostCommit(ctx, e)
	}

	return nil
}

// fail rolls the session back and propagates the cause. A rollback failure
// takes precedence but keeps the cause discoverable.
func (u *UnitOfWork) fail(ctx context.Context, sess Session, cause error) error {
	if rbErr := sess.Rollback(ctx); rbErr != nil {
		u.log.WithContext(ctx).Errorf("rollback failed: %v", rbErr)
		return &RollbackError{Err: rbErr, Cause: cause}
	}
	return cause
}
