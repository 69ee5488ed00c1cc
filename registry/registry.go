// Package registry stores one service instance per Go type, looked up
// generically. A Registry is an explicit value: code that needs process-wide
// sharing creates one at startup and passes it along, rather than reaching
// for hidden package state.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotRegistered reports a lookup, replace, or unregister for a type
	// with no stored instance.
	ErrNotRegistered = errors.New("registry: service not registered")

	// ErrNilService reports a nil instance passed to Register or Put.
	ErrNilService = errors.New("registry: nil service")
)

// Registry maps a service type to its single instance. The zero value is
// ready to use.
type Registry struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{services: make(map[reflect.Type]any)}
}

// Register stores svc as the instance for S. The last registration wins.
func Register[S any](r *Registry, svc S) error {
	return store(r, keyOf[S](), svc)
}

// Put stores svc for S whether or not one exists. It is the explicit
// spelling for call sites where overwriting is the point.
func Put[S any](r *Registry, svc S) error {
	return store(r, keyOf[S](), svc)
}

// Replace overwrites the instance stored for S. Unlike Register, it fails
// with ErrNotRegistered when the type was never stored.
func Replace[S any](r *Registry, svc S) error {
	key := keyOf[S]()
	if r == nil {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	if isNil(svc) {
		return fmt.Errorf("%w: %s", ErrNilService, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	r.services[key] = svc
	return nil
}

// Get returns the instance stored for S.
func Get[S any](r *Registry) (S, error) {
	var zero S
	key := keyOf[S]()
	if r == nil {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	r.mu.RLock()
	v, ok := r.services[key]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	return v.(S), nil
}

// GetOrCreate returns the instance stored for S, constructing and storing
// one with factory when absent. A nil factory makes it equivalent to Get.
func GetOrCreate[S any](r *Registry, factory func() S) (S, error) {
	var zero S
	if factory == nil {
		return Get[S](r)
	}
	key := keyOf[S]()
	if r == nil {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.services[key]; ok {
		return v.(S), nil
	}
	svc := factory()
	if isNil(svc) {
		return zero, fmt.Errorf("%w: factory for %s returned nil", ErrNilService, key)
	}
	if r.services == nil {
		r.services = make(map[reflect.Type]any)
	}
	r.services[key] = svc
	return svc, nil
}

// Unregister removes the instance stored for S.
func Unregister[S any](r *Registry) error {
	key := keyOf[S]()
	if r == nil {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	delete(r.services, key)
	return nil
}

// IsRegistered reports whether an instance is stored for S. It never fails.
func IsRegistered[S any](r *Registry) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.services[keyOf[S]()]
	return ok
}

// Clear removes every stored instance, e.g. between test runs.
func (r *Registry) Clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.services = make(map[reflect.Type]any)
	r.mu.Unlock()
}

// Len returns the number of stored instances.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}

func store[S any](r *Registry, key reflect.Type, svc S) error {
	if r == nil {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	if isNil(svc) {
		return fmt.Errorf("%w: %s", ErrNilService, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.services == nil {
		r.services = make(map[reflect.Type]any)
	}
	r.services[key] = svc
	return nil
}

func keyOf[S any]() reflect.Type {
	return reflect.TypeOf((*S)(nil)).Elem()
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
