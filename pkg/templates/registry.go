package templates

import (
	"fmt"
	"sync"
)

type registryKey struct {
	eventType string
	channel   Channel
}

// Registry is the static template catalog built at process start.
// Registration is expected during startup only; lookups are safe for
// concurrent use at any time.
type Registry struct {
	mu        sync.RWMutex
	templates map[registryKey]Template
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[registryKey]Template),
	}
}

// Register adds a template to the registry. Duplicate (event type, channel)
// keys follow a last-registered-wins rule.
func (r *Registry) Register(t Template) error {
	if t.EventType == "" {
		return fmt.Errorf("%w: event type is required", ErrInvalidTemplate)
	}
	if !t.Channel.Valid() {
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidTemplate, t.Channel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[registryKey{t.EventType, t.Channel}] = t
	return nil
}

// MustRegister works like Register but panics on invalid templates.
// Use for the fixed in-process catalog registered at startup.
func (r *Registry) MustRegister(t Template) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Resolve looks up a template by exact (event type, channel) key.
// A miss or an inactive template returns false; callers apply the basic
// notification fallback.
func (r *Registry) Resolve(eventType string, channel Channel) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[registryKey{eventType, channel}]
	if !ok || !t.Active {
		return Template{}, false
	}
	return t, true
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
