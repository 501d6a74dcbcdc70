package format

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores formatters by name.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter by its Name(). Duplicate names return an error.
func (r *Registry) Register(formatter Formatter) error {
	if formatter == nil {
		return fmt.Errorf("format: formatter is required")
	}
	name := formatter.Name()
	if name == "" {
		return fmt.Errorf("format: formatter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("format: formatter %q already registered", name)
	}

	r.formatters[name] = formatter
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(formatter Formatter) {
	if err := r.Register(formatter); err != nil {
		panic(err)
	}
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formatter, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
	}
	return formatter, nil
}

// MustGet panics if the formatter is missing.
func (r *Registry) MustGet(name string) Formatter {
	formatter, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return formatter
}

// List returns a sorted list of formatter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a formatter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.formatters[name]
	return ok
}
