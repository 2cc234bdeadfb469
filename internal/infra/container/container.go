// Package container provides a small service-locator used as the handler
// dependency resolver. Handlers declare dependencies by name and resolve
// them per invocation; the container decides lifetime.
package container

import (
	"fmt"
	"sync"

	"go-workforce/internal/domain/event"
)

// Compile-time interface check
var _ event.Resolver = (*Container)(nil)

// Factory builds a dependency instance. It receives the container so
// factories can resolve their own dependencies.
type Factory func(c *Container) (any, error)

// Container maps dependency names to factories. Registration happens
// during setup; Resolve is safe for concurrent use afterwards.
type Container struct {
	mu         sync.RWMutex
	factories  map[string]Factory
	singletons map[string]bool
	instances  map[string]any
}

// New creates an empty container.
func New() *Container {
	return &Container{
		factories:  make(map[string]Factory),
		singletons: make(map[string]bool),
		instances:  make(map[string]any),
	}
}

// RegisterSingleton registers a factory whose result is built once and
// reused for every resolution.
func (c *Container) RegisterSingleton(name string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = f
	c.singletons[name] = true
	delete(c.instances, name)
}

// RegisterTransient registers a factory invoked on every resolution.
func (c *Container) RegisterTransient(name string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = f
	c.singletons[name] = false
	delete(c.instances, name)
}

// Resolve returns the dependency registered under name.
func (c *Container) Resolve(name string) (any, error) {
	c.mu.RLock()
	f, ok := c.factories[name]
	if !ok {
		c.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", event.ErrNotResolvable, name)
	}
	if c.singletons[name] {
		if inst, built := c.instances[name]; built {
			c.mu.RUnlock()
			return inst, nil
		}
	}
	c.mu.RUnlock()

	inst, err := f(c)
	if err != nil {
		return nil, err
	}

	if c.singletons[name] {
		c.mu.Lock()
		// Another goroutine may have built it meanwhile; keep the first.
		if prior, built := c.instances[name]; built {
			inst = prior
		} else {
			c.instances[name] = inst
		}
		c.mu.Unlock()
	}

	return inst, nil
}

// Resolve returns the dependency registered under name, asserted to T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q has type %T", event.ErrNotResolvable, name, v)
	}
	return t, nil
}
