package module

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Manifest describes one module: its exported types in declaration order,
// the marker interface of inspectable types and per-type construction.
type Manifest struct {
	name    string
	marker  reflect.Type
	exports []*Export
	byType  map[reflect.Type]*Export
	errs    []error
}

// Option configures a Manifest.
type Option func(m *Manifest)

// New creates a Manifest. Invalid options do not panic; they are collected
// and reported by Err, so a broken plugin fails to load instead of crashing
// the host process.
func New(name string, opts ...Option) *Manifest {
	m := &Manifest{
		name:   name,
		byType: make(map[reflect.Type]*Export),
	}

	if strings.TrimSpace(name) == "" {
		m.errs = append(m.errs, errors.New("module name cannot be empty"))
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Marker designates the interface every inspectable type must implement.
func Marker[T any]() Option {
	return func(m *Manifest) {
		t := reflect.TypeFor[T]()
		if t.Kind() != reflect.Interface {
			m.errs = append(m.errs, fmt.Errorf("marker %s is not an interface", typeStr(t)))
			return
		}

		m.marker = t
	}
}

// Type exports T. T must be a named, non-pointer type; interfaces are
// allowed and are treated as abstract.
func Type[T any](opts ...ExportOption) Option {
	return func(m *Manifest) {
		t := reflect.TypeFor[T]()
		if err := m.add(t, opts); err != nil {
			m.errs = append(m.errs, err)
		}
	}
}

func (m *Manifest) add(t reflect.Type, opts []ExportOption) error {
	if t.Kind() == reflect.Ptr {
		return fmt.Errorf("export %s: pointer types cannot be exported, export the element type", typeStr(t))
	}

	if t.Name() == "" {
		return fmt.Errorf("export %s: type must be named", typeStr(t))
	}

	if _, exists := m.byType[t]; exists {
		return fmt.Errorf("export %s: exported twice", typeStr(t))
	}

	e := &Export{Type: t}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return fmt.Errorf("export %s: %w", typeStr(t), err)
		}
	}

	m.exports = append(m.exports, e)
	m.byType[t] = e

	return nil
}

// Name returns the module name.
func (m *Manifest) Name() string {
	return m.name
}

// Marker returns the marker interface, or nil when none was declared.
func (m *Manifest) Marker() reflect.Type {
	return m.marker
}

// Exports returns the exports in declaration order.
func (m *Manifest) Exports() []*Export {
	out := make([]*Export, len(m.exports))
	copy(out, m.exports)

	return out
}

// Export returns the export for t. Pointer types resolve to their element.
func (m *Manifest) Export(t reflect.Type) (*Export, bool) {
	if t == nil {
		return nil, false
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	e, ok := m.byType[t]

	return e, ok
}

// Lookup finds an export by qualified ("pkg/path.Name") or short name.
func (m *Manifest) Lookup(name string) (*Export, bool) {
	for _, e := range m.exports {
		if e.Name() == name || e.Type.Name() == name {
			return e, true
		}
	}

	return nil, false
}

// Err reports every invalid option given to New on a single line.
func (m *Manifest) Err() error {
	if len(m.errs) == 0 {
		return nil
	}

	return fmt.Errorf("module %q: %w", m.name, optionErrors(m.errs))
}

// optionErrors joins errors with "; " and unwraps to all of them.
type optionErrors []error

func (e optionErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}

func (e optionErrors) Unwrap() []error {
	return e
}

// Export is one exported type of a module.
type Export struct {
	// Type is the exported named type, never a pointer.
	Type reflect.Type
	// Strategy builds instances when set; nil means zero-value construction.
	Strategy *Strategy

	zeroInvalid bool
	params      map[string][]string
}

// ExportOption configures an Export.
type ExportOption func(e *Export) error

// Constructor registers fn as the construction strategy of the export.
// Defaults are the designated arguments used when the engine has to build an
// instance on its own; missing trailing defaults are zero values.
func Constructor(fn any, defaults ...any) ExportOption {
	return func(e *Export) error {
		s, err := ParseStrategy(fn, defaults...)
		if err != nil {
			return err
		}

		if s.Type != e.Type {
			return fmt.Errorf("constructor %s builds %s", s.Name, typeStr(s.Type))
		}

		e.Strategy = s

		return nil
	}
}

// ZeroInvalid marks the zero value of the type as unusable. Without a
// Constructor such a type cannot be built by the engine.
func ZeroInvalid() ExportOption {
	return func(e *Export) error {
		e.zeroInvalid = true
		return nil
	}
}

// ParamNames records parameter names for a method; reflection does not
// retain them.
func ParamNames(method string, names ...string) ExportOption {
	return func(e *Export) error {
		if e.params == nil {
			e.params = make(map[string][]string)
		}

		e.params[method] = names

		return nil
	}
}

// Name returns the fully qualified type name.
func (e *Export) Name() string {
	return typeStr(e.Type)
}

// Abstract reports whether the export cannot have instances.
func (e *Export) Abstract() bool {
	return e.Type.Kind() == reflect.Interface
}

// ZeroValid reports whether a zero value is a usable instance.
func (e *Export) ZeroValid() bool {
	return !e.zeroInvalid && !e.Abstract()
}

// ParamName returns the recorded name of parameter i of method, or "argN".
func (e *Export) ParamName(method string, i int) string {
	if names := e.params[method]; i < len(names) && names[i] != "" {
		return names[i]
	}

	return fmt.Sprintf("arg%d", i)
}
