package contenttype

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRegistered is returned by Get for unknown namespaces.
var ErrNotRegistered = errors.New("contenttype: not registered")

// ErrInvalidSubmission is wrapped by content type errors caused by the
// submitted values rather than by storage or rendering.
var ErrInvalidSubmission = errors.New("contenttype: invalid submission")

// Registry stores content types by namespace.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ContentType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]ContentType),
	}
}

// Register adds a content type by its Namespace(). Duplicates are rejected.
func (r *Registry) Register(ct ContentType) error {
	if ct == nil {
		return fmt.Errorf("contenttype: content type is required")
	}
	ns := ct.Namespace()
	if ns == "" {
		return fmt.Errorf("contenttype: namespace is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[ns]; exists {
		return fmt.Errorf("contenttype: %q already registered", ns)
	}
	r.types[ns] = ct
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(ct ContentType) {
	if err := r.Register(ct); err != nil {
		panic(err)
	}
}

// Get retrieves a content type by namespace.
func (r *Registry) Get(ns string) (ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, ok := r.types[ns]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, ns)
	}
	return ct, nil
}

// List returns the registered namespaces, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active returns the namespaces whose content type is enabled, sorted. This
// is the list a host offers when an editor picks the label type.
func (r *Registry) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name, ct := range r.types {
		if ct.IsActive() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
