package container

import (
	"errors"
	"testing"

	"go-workforce/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	id int
}

func TestContainer_ResolveUnknownName(t *testing.T) {
	c := New()

	_, err := c.Resolve("missing")

	assert.ErrorIs(t, err, event.ErrNotResolvable)
}

func TestContainer_SingletonIsBuiltOnce(t *testing.T) {
	c := New()
	built := 0
	c.RegisterSingleton("widget", func(c *Container) (any, error) {
		built++
		return &widget{id: built}, nil
	})

	first, err := c.Resolve("widget")
	require.NoError(t, err)
	second, err := c.Resolve("widget")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
}

func TestContainer_TransientIsBuiltPerResolution(t *testing.T) {
	c := New()
	built := 0
	c.RegisterTransient("widget", func(c *Container) (any, error) {
		built++
		return &widget{id: built}, nil
	})

	first, err := c.Resolve("widget")
	require.NoError(t, err)
	second, err := c.Resolve("widget")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, built)
}

func TestContainer_FactoryErrorPropagates(t *testing.T) {
	c := New()
	factoryErr := errors.New("construction failed")
	c.RegisterSingleton("widget", func(c *Container) (any, error) {
		return nil, factoryErr
	})

	_, err := c.Resolve("widget")

	assert.ErrorIs(t, err, factoryErr)
}

func TestContainer_FactoriesResolveTheirOwnDependencies(t *testing.T) {
	c := New()
	c.RegisterSingleton("inner", func(c *Container) (any, error) {
		return &widget{id: 1}, nil
	})
	c.RegisterTransient("outer", func(c *Container) (any, error) {
		return Resolve[*widget](c, "inner")
	})

	outer, err := Resolve[*widget](c, "outer")

	require.NoError(t, err)
	assert.Equal(t, 1, outer.id)
}

func TestResolve_TypeMismatch(t *testing.T) {
	c := New()
	c.RegisterSingleton("widget", func(c *Container) (any, error) {
		return &widget{}, nil
	})

	_, err := Resolve[string](c, "widget")

	assert.ErrorIs(t, err, event.ErrNotResolvable)
}

func TestContainer_ReRegistrationDropsCachedInstance(t *testing.T) {
	c := New()
	c.RegisterSingleton("widget", func(c *Container) (any, error) {
		return &widget{id: 1}, nil
	})
	first, err := Resolve[*widget](c, "widget")
	require.NoError(t, err)
	require.Equal(t, 1, first.id)

	c.RegisterSingleton("widget", func(c *Container) (any, error) {
		return &widget{id: 2}, nil
	})

	second, err := Resolve[*widget](c, "widget")
	require.NoError(t, err)
	assert.Equal(t, 2, second.id)
}
