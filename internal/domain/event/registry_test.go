package event

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedEvent struct {
	Base
	name string
}

func (e namedEvent) EventName() string {
	return e.name
}

func newNamedEvent(name string) namedEvent {
	return namedEvent{Base: NewBase("agg-1"), name: name}
}

type mapResolver map[string]any

func (m mapResolver) Resolve(name string) (any, error) {
	v, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotResolvable, name)
	}
	return v, nil
}

func recordingHandler(name string, calls *[]string, failErr error) HandlerFunc {
	return func(ctx context.Context, e Event, r Resolver) error {
		*calls = append(*calls, name)
		return failErr
	}
}

func TestRegistry_DispatchPreCommit_InvokesInRegistrationOrder(t *testing.T) {
	var calls []string
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{EventName: "a", Name: "h1", Handle: recordingHandler("h1", &calls, nil)})
	reg.Register(Registration{EventName: "a", Name: "h2", Handle: recordingHandler("h2", &calls, nil)})
	reg.Register(Registration{EventName: "b", Name: "other", Handle: recordingHandler("other", &calls, nil)})

	err := reg.DispatchPreCommit(context.Background(), newNamedEvent("a"))

	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, calls)
}

func TestRegistry_DispatchPreCommit_FailFast(t *testing.T) {
	var calls []string
	cause := errors.New("boom")
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{EventName: "a", Name: "h1", Handle: recordingHandler("h1", &calls, nil)})
	reg.Register(Registration{EventName: "a", Name: "h2", Handle: recordingHandler("h2", &calls, cause)})
	reg.Register(Registration{EventName: "a", Name: "h3", Handle: recordingHandler("h3", &calls, nil)})

	err := reg.DispatchPreCommit(context.Background(), newNamedEvent("a"))

	var he *HandlerError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "h2", he.Handler)
	assert.Equal(t, "a", he.EventName)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"h1", "h2"}, calls, "h3 must not run after h2 fails")
}

func TestRegistry_DispatchPreCommit_NoHandlersIsNoop(t *testing.T) {
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)

	err := reg.DispatchPreCommit(context.Background(), newNamedEvent("unknown"))

	assert.NoError(t, err)
}

func TestRegistry_DispatchPreCommit_CancelledContext(t *testing.T) {
	var calls []string
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{EventName: "a", Name: "h1", Handle: recordingHandler("h1", &calls, nil)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := reg.DispatchPreCommit(ctx, newNamedEvent("a"))

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestRegistry_DispatchPostCommit_ContinuesAfterFailure(t *testing.T) {
	var calls []string
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{EventName: "a", Name: "h1", Phase: PostCommit, Handle: recordingHandler("h1", &calls, errors.New("boom"))})
	reg.Register(Registration{EventName: "a", Name: "h2", Phase: PostCommit, Handle: recordingHandler("h2", &calls, nil)})

	reg.DispatchPostCommit(context.Background(), newNamedEvent("a"))

	assert.Equal(t, []string{"h1", "h2"}, calls)
}

func TestRegistry_PhasesAreSeparate(t *testing.T) {
	var calls []string
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{EventName: "a", Name: "pre", Phase: PreCommit, Handle: recordingHandler("pre", &calls, nil)})
	reg.Register(Registration{EventName: "a", Name: "post", Phase: PostCommit, Handle: recordingHandler("post", &calls, nil)})

	require.NoError(t, reg.DispatchPreCommit(context.Background(), newNamedEvent("a")))
	assert.Equal(t, []string{"pre"}, calls)

	reg.DispatchPostCommit(context.Background(), newNamedEvent("a"))
	assert.Equal(t, []string{"pre", "post"}, calls)
}

func TestRegistry_HandlersResolveDependenciesPerInvocation(t *testing.T) {
	resolved := 0
	resolver := mapResolver{"dep": "value"}
	reg := NewRegistry(resolver, log.DefaultLogger)
	reg.Register(Registration{
		EventName: "a",
		Name:      "needy",
		Handle: func(ctx context.Context, e Event, r Resolver) error {
			v, err := r.Resolve("dep")
			if err != nil {
				return err
			}
			if v == "value" {
				resolved++
			}
			return nil
		},
	})

	require.NoError(t, reg.DispatchPreCommit(context.Background(), newNamedEvent("a")))
	require.NoError(t, reg.DispatchPreCommit(context.Background(), newNamedEvent("a")))

	assert.Equal(t, 2, resolved)
}

func TestRegistry_UnresolvableDependencyFailsPreCommit(t *testing.T) {
	reg := NewRegistry(mapResolver{}, log.DefaultLogger)
	reg.Register(Registration{
		EventName: "a",
		Name:      "needy",
		Handle: func(ctx context.Context, e Event, r Resolver) error {
			_, err := r.Resolve("missing")
			return err
		},
	})

	err := reg.DispatchPreCommit(context.Background(), newNamedEvent("a"))

	assert.ErrorIs(t, err, ErrNotResolvable)
}
