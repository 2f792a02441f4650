package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	name   string
	closed *[]string
	err    error
}

func (c *closeRecorder) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestContainerBuildsOnce(t *testing.T) {
	c := New()
	builds := 0
	c.RegisterBuilder("svc", func(*Container) (interface{}, error) {
		builds++
		return builds, nil
	})

	first, err := c.Get("svc")
	require.NoError(t, err)
	second, err := c.Get("svc")
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, builds)
}

func TestContainerNestedResolution(t *testing.T) {
	c := New()
	c.Register("base", 20)
	c.RegisterBuilder("derived", func(c *Container) (interface{}, error) {
		base, err := c.Get("base")
		if err != nil {
			return nil, err
		}
		return base.(int) + 1, nil
	})

	v, err := c.Get("derived")
	require.NoError(t, err)
	assert.Equal(t, 21, v)
}

func TestContainerErrors(t *testing.T) {
	c := New()

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.False(t, c.Has("missing"))

	c.RegisterBuilder("loop", func(c *Container) (interface{}, error) {
		return c.Get("loop")
	})
	_, err = c.Get("loop")
	assert.ErrorIs(t, err, ErrDependencyCycle)

	boom := errors.New("boom")
	c.RegisterBuilder("broken", func(*Container) (interface{}, error) { return nil, boom })
	_, err = c.Get("broken")
	assert.ErrorIs(t, err, boom)

	// A failed build may be retried.
	_, err = c.Get("broken")
	assert.ErrorIs(t, err, boom)

	assert.Panics(t, func() { c.MustGet("missing") })
}

func TestContainerCloseOrder(t *testing.T) {
	var closed []string
	c := New()
	c.RegisterBuilder("db", func(*Container) (interface{}, error) {
		return &closeRecorder{name: "db", closed: &closed}, nil
	})
	c.RegisterBuilder("cache", func(c *Container) (interface{}, error) {
		if _, err := c.Get("db"); err != nil {
			return nil, err
		}
		return &closeRecorder{name: "cache", closed: &closed, err: errors.New("flush failed")}, nil
	})
	c.RegisterBuilder("unused", func(*Container) (interface{}, error) {
		return &closeRecorder{name: "unused", closed: &closed}, nil
	})

	_, err := c.Get("cache")
	require.NoError(t, err)

	err = c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close cache")
	assert.Equal(t, []string{"cache", "db"}, closed)

	// Builders survive Close and rebuild on demand.
	assert.True(t, c.Has("db"))
	require.NoError(t, c.Close())
}
