package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tracehook/pkg/domain"
	"github.com/aretw0/tracehook/pkg/ports"
)

// Registry manages the available inspector plugins, keyed by name.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]ports.InspectorFactory
}

var _ ports.Registry = (*Registry)(nil)

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]ports.InspectorFactory),
	}
}

// Register adds a plugin factory to the registry.
// A name can be registered once; a second registration fails with domain.ErrPluginExists.
func (r *Registry) Register(name string, factory ports.InspectorFactory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("%w: name %q", domain.ErrInvalidPlugin, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrPluginExists, name)
	}
	r.plugins[name] = factory
	return nil
}

// New looks up a plugin by name and builds a fresh inspector from it.
// Returns an error if the plugin is not found.
func (r *Registry) New(name string) (ports.Inspector, error) {
	r.mu.RLock()
	factory, ok := r.plugins[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPluginNotFound, name)
	}

	return factory(), nil
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
