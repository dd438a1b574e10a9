// Package registry maps message type names to their schema declarations.
//
// The registry is the lookup the codec consumes when decoding: a document
// plus a type name resolves to the validator set for that type. Message
// types register themselves at init time, so importing a type package is
// enough to make it decodable. Schemas are held as opaque values to avoid
// an import cycle with the message package; the codec asserts them back to
// the concrete schema type after lookup.
//
// Registered entries are read-only for the lifetime of the process.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/simcesplatform/domain-messages/errors"
)

// Registration holds the schema and metadata for one message type.
type Registration struct {
	Name        string         `json:"name"`        // Wire-level type name (e.g., "ResourceState")
	Version     string         `json:"version"`     // Schema version (e.g., "1.0")
	Description string         `json:"description"` // Human-readable description
	Schema      any            `json:"-"`           // Validator set (not serializable)
	Example     map[string]any `json:"example"`     // Optional example document
}

// Key returns the lookup key for this registration. Types are addressed by
// name alone; the version is catalog metadata.
func (r *Registration) Key() string {
	return r.Name
}

// Registry provides thread-safe registration and lookup of message type
// schemas.
type Registry struct {
	registrations map[string]*Registration
	mu            sync.RWMutex
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]*Registration),
	}
}

// Register adds a message type with validation. Returns an error if the
// registration is incomplete or the type name is already taken.
func (r *Registry) Register(registration *Registration) error {
	if registration == nil {
		return errors.WrapInvalid(errors.ErrInvalidSchema, "Registry", "Register", "registration is nil")
	}
	if registration.Name == "" {
		return errors.WrapInvalid(errors.ErrInvalidSchema, "Registry", "Register", "type name validation")
	}
	if registration.Version == "" {
		return errors.WrapInvalid(errors.ErrInvalidSchema, "Registry", "Register", "version validation")
	}
	if registration.Schema == nil {
		return errors.WrapInvalid(errors.ErrInvalidSchema, "Registry", "Register", "schema validation")
	}

	key := registration.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[key]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "Registry", "Register",
			fmt.Sprintf("message type %q is already registered", key))
	}

	r.registrations[key] = registration
	return nil
}

// Lookup returns the registration for a type name. The returned value is a
// copy; the Schema reference it carries is shared and must be treated as
// read-only.
func (r *Registry) Lookup(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registration, exists := r.registrations[name]
	if !exists {
		return nil, false
	}

	copied := *registration
	return &copied, true
}

// List returns every registration keyed by type name. The returned map is
// a copy.
func (r *Registry) List() map[string]*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*Registration, len(r.registrations))
	for key, registration := range r.registrations {
		copied := *registration
		result[key] = &copied
	}
	return result
}

// Names returns all registered type names in lexical order, so callers
// iterating the registry produce deterministic output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.registrations))
	for key := range r.registrations {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.registrations)
}

// defaultRegistry is the process-wide registry message types register
// themselves with at init time.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a message type to the process-wide registry.
func Register(registration *Registration) error {
	return defaultRegistry.Register(registration)
}

// Lookup resolves a type name in the process-wide registry.
func Lookup(name string) (*Registration, bool) {
	return defaultRegistry.Lookup(name)
}

// Names returns the type names in the process-wide registry in lexical
// order.
func Names() []string {
	return defaultRegistry.Names()
}
