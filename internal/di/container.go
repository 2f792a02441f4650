// Package di wires the preauthd services from configuration.
package di

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	// ErrServiceNotFound is returned for a name with no instance or builder.
	ErrServiceNotFound = errors.New("service not found")

	// ErrDependencyCycle is returned when a builder resolves itself.
	ErrDependencyCycle = errors.New("dependency cycle")
)

// Container is the dependency injection container.
// It manages service registration and resolution.
type Container struct {
	mu        sync.RWMutex
	services  map[string]interface{}
	builders  map[string]Builder
	resolving map[string]bool

	// order records build order so Close can release in reverse
	order []string
}

// Builder is a function that creates a service instance. Builders may
// resolve other services through c.
type Builder func(c *Container) (interface{}, error)

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services:  make(map[string]interface{}),
		builders:  make(map[string]Builder),
		resolving: make(map[string]bool),
	}
}

// Register registers a service instance.
func (c *Container) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get retrieves a service by name, building it on first use.
func (c *Container) Get(name string) (interface{}, error) {
	c.mu.Lock()
	if service, exists := c.services[name]; exists {
		c.mu.Unlock()
		return service, nil
	}
	builder, hasBuilder := c.builders[name]
	if !hasBuilder {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	if c.resolving[name] {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, name)
	}
	c.resolving[name] = true
	c.mu.Unlock()

	// The lock is released while building so builders can call Get.
	service, err := builder(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolving, name)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	c.services[name] = service
	c.order = append(c.order, name)
	return service, nil
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) interface{} {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[name]
	if exists {
		return true
	}
	_, exists = c.builders[name]
	return exists
}

// Close closes every built service that implements io.Closer, most
// recently built first, and forgets all built instances.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := len(c.order) - 1; i >= 0; i-- {
		name := c.order[i]
		if closer, ok := c.services[name].(io.Closer); ok && closer != nil {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", name, err))
			}
		}
		delete(c.services, name)
	}
	c.order = nil
	return errors.Join(errs...)
}
