// Package instance keeps the single live instance of every type a session
// works with.
package instance

import (
	"log/slog"
	"reflect"
	"sync"

	"typeprobe/internal/catalog"
)

// Registry maps a type to its instance. It holds at most one instance per
// type; every operation is serialized by one mutex.
type Registry struct {
	mu        sync.Mutex
	instances map[reflect.Type]reflect.Value

	log *slog.Logger
}

// New creates an empty Registry.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	return &Registry{
		instances: make(map[reflect.Type]reflect.Value),
		log:       log,
	}
}

// GetOrCreate returns the instance of td, constructing it on first use. The
// returned value is a *T. A failed construction caches nothing.
func (r *Registry) GetOrCreate(td catalog.TypeDescriptor) (reflect.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.instances[td.Type]; ok {
		return v, nil
	}

	v, err := construct(td)
	if err != nil {
		return reflect.Value{}, err
	}

	r.log.Debug("instance created", slog.String("type", td.Name))
	r.instances[td.Type] = v

	return v, nil
}

func construct(td catalog.TypeDescriptor) (reflect.Value, error) {
	export := td.Export()
	if export == nil {
		return reflect.Value{}, &ConstructionError{Kind: NoStrategy, Type: td.Name}
	}

	if s := export.Strategy; s != nil {
		v, err := s.Build()
		if err != nil {
			return reflect.Value{}, &ConstructionError{Kind: ConstructorThrew, Type: td.Name, Constructor: s.Name, Err: err}
		}

		return v, nil
	}

	if !export.ZeroValid() {
		return reflect.Value{}, &ConstructionError{Kind: NoStrategy, Type: td.Name}
	}

	return reflect.New(td.Type), nil
}

// Lookup returns the instance of td without constructing one.
func (r *Registry) Lookup(td catalog.TypeDescriptor) (reflect.Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.instances[td.Type]

	return v, ok
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.instances)
}

// Reset drops every instance.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.instances)
}
