package event

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
)

// Resolver looks up handler dependencies by name. Resolution strategy
// (singleton, transient, scoped) is entirely the resolver's concern.
type Resolver interface {
	Resolve(name string) (any, error)
}

// Phase determines when a handler runs relative to the transaction commit.
type Phase int

const (
	// PreCommit handlers run before the session commits. A failure aborts
	// the whole unit of work and rolls the transaction back.
	PreCommit Phase = iota
	// PostCommit handlers run after a successful commit. Failures are
	// logged and never affect the unit of work's outcome.
	PostCommit
)

// HandlerFunc is the invocation behavior of a registered handler. Handlers
// obtain their dependencies from the resolver on each invocation.
type HandlerFunc func(ctx context.Context, e Event, r Resolver) error

// Registration binds a handler to an event name in one of the two phases.
type Registration struct {
	// EventName is the type tag of the events this handler receives.
	EventName string
	// Name identifies the handler in logs and errors.
	Name string
	// Phase selects pre- or post-commit invocation. Zero value is PreCommit.
	Phase Phase
	// Handle is the invocation behavior.
	Handle HandlerFunc
}

// Registry maps event names to ordered handler lists, partitioned into a
// pre-commit and a post-commit group. It is populated during setup and
// read-only afterwards, so concurrent dispatch from independent unit of
// work instances is safe.
type Registry struct {
	resolver Resolver
	pre      map[string][]Registration
	post     map[string][]Registration
	log      *log.Helper
}

// NewRegistry creates a new handler registry backed by the given resolver.
func NewRegistry(resolver Resolver, logger log.Logger) *Registry {
	return &Registry{
		resolver: resolver,
		pre:      make(map[string][]Registration),
		post:     make(map[string][]Registration),
		log:      log.NewHelper(logger),
	}
}

// Register appends a handler to its phase bucket. Registration order is
// invocation order within a phase. Duplicate registrations produce
// duplicate invocations; no uniqueness check is performed.
func (r *Registry) Register(reg Registration) {
	switch reg.Phase {
	case PostCommit:
		r.post[reg.EventName] = append(r.post[reg.EventName], reg)
	default:
		r.pre[reg.EventName] = append(r.pre[reg.EventName], reg)
	}
}

// DispatchPreCommit invokes the pre-commit handlers for the event
// sequentially, in registration order. The first failure aborts the
// dispatch and is returned as a *HandlerError. A cancelled context also
// aborts the dispatch.
func (r *Registry) DispatchPreCommit(ctx context.Context, e Event) error {
	for _, reg := range r.pre[e.EventName()] {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.Handle(ctx, e, r.resolver); err != nil {
			return &HandlerError{EventName: e.EventName(), Handler: reg.Name, Err: err}
		}
	}
	return nil
}

// DispatchPostCommit invokes the post-commit handlers for the event
// sequentially, in registration order. Failures are logged and do not stop
// the remaining handlers: the commit already happened and is not reversible.
func (r *Registry) DispatchPostCommit(ctx context.Context, e Event) {
	for _, reg := range r.post[e.EventName()] {
		if err := reg.Handle(ctx, e, r.resolver); err != nil {
			r.log.WithContext(ctx).Errorf("post-commit handler %q failed for event %q (id %s): %v",
				reg.Name, e.EventName(), e.EventID(), err)
		}
	}
}
