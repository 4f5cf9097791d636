package catalog

import (
	"fmt"
	"reflect"
)

// Predicate selects types during discovery.
type Predicate func(t reflect.Type) bool

// Concrete accepts every type that can have instances.
func Concrete() Predicate {
	return func(t reflect.Type) bool {
		return t.Kind() != reflect.Interface
	}
}

// Implements accepts t when t or *t implements iface.
func Implements(iface reflect.Type) Predicate {
	return func(t reflect.Type) bool {
		if iface == nil || iface.Kind() != reflect.Interface {
			return false
		}

		return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
	}
}

// All accepts a type when every predicate does.
func All(preds ...Predicate) Predicate {
	return func(t reflect.Type) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}

		return true
	}
}

// DefaultPredicate is Implements(marker) for modules declaring a marker and
// Concrete otherwise.
func DefaultPredicate(h *Handle) Predicate {
	if h == nil || h.Manifest.Marker() == nil {
		return Concrete()
	}

	return All(Implements(h.Manifest.Marker()), Concrete())
}

// MarkerByName resolves an interface export of h to use as marker instead of
// the declared one.
func MarkerByName(h *Handle, name string) (reflect.Type, error) {
	e, ok := h.Manifest.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("module %s exports no type %q", h.Name(), name)
	}

	if !e.Abstract() {
		return nil, fmt.Errorf("marker %s is not an interface", e.Name())
	}

	return e.Type, nil
}
