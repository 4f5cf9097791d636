package module

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"typeprobe/internal/common"
)

var (
	ErrNotAConstructor = errors.New("provided function is not a recognizable constructor")
	ErrNotAFunction    = errors.New("provided constructor is not a function")
	ErrDoublePointer   = errors.New("constructor does not support double pointers")
	ErrTooManyDefaults = errors.New("more defaults than constructor parameters")
	ErrBadDefault      = errors.New("default is not assignable to the parameter")
	ErrNoPrimary       = errors.New("constructor does not take a leading name parameter")
	ErrNilInstance     = errors.New("constructor returned a nil instance")
)

// Strategy is a validated constructor function together with the designated
// arguments the engine passes when nobody supplies them.
type Strategy struct {
	// Name is the package-qualified function name, e.g. "fsmodel.NewFolder".
	Name string
	// Type is the constructed type, never a pointer.
	Type reflect.Type
	// In holds the parameter types.
	In []reflect.Type
	// HasErr is set when the constructor also returns an error.
	HasErr bool

	fn         reflect.Value
	defaults   []reflect.Value
	returnsPtr bool
}

// ParseStrategy inspects fn and returns a Strategy if it is a valid constructor.
//
// Supports signatures:
//   - func(...) T
//   - func(...) *T
//   - func(...) (T, error)
//   - func(...) (*T, error)
func ParseStrategy(fn any, defaults ...any) (*Strategy, error) {
	if fn == nil {
		return nil, ErrNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, ErrNotAFunction
	}

	if fnType.IsVariadic() || fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return nil, ErrNotAConstructor
	}

	out := fnType.Out(0)
	if out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Ptr {
		return nil, ErrDoublePointer
	}

	s := &Strategy{
		Name:       funcName(fnVal),
		Type:       out,
		fn:         fnVal,
		returnsPtr: out.Kind() == reflect.Ptr,
	}
	if s.returnsPtr {
		s.Type = out.Elem()
	}

	if fnType.NumOut() == 2 {
		if !isError(fnType.Out(1)) {
			return nil, ErrNotAConstructor
		}

		s.HasErr = true
	}

	if len(defaults) > fnType.NumIn() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrTooManyDefaults, s.Name, fnType.NumIn(), len(defaults))
	}

	for i := range fnType.NumIn() {
		in := fnType.In(i)
		s.In = append(s.In, in)

		if i >= len(defaults) {
			s.defaults = append(s.defaults, reflect.Zero(in))
			continue
		}

		v, err := defaultValue(defaults[i], in)
		if err != nil {
			return nil, fmt.Errorf("%s parameter %d: %w", s.Name, i, err)
		}

		s.defaults = append(s.defaults, v)
	}

	return s, nil
}

// Primary reports whether the first parameter is a name (string) that
// BuildNamed can replace.
func (s *Strategy) Primary() bool {
	return len(s.In) > 0 && s.In[0].Kind() == reflect.String
}

// Build calls the constructor with the designated defaults and returns a
// pointer to the new instance.
func (s *Strategy) Build() (reflect.Value, error) {
	args := make([]reflect.Value, len(s.defaults))
	copy(args, s.defaults)

	return s.call(args)
}

// BuildNamed calls the constructor with name as the first argument and the
// designated defaults for the rest.
func (s *Strategy) BuildNamed(name string) (reflect.Value, error) {
	if !s.Primary() {
		return reflect.Value{}, fmt.Errorf("%s: %w", s.Name, ErrNoPrimary)
	}

	args := make([]reflect.Value, len(s.defaults))
	copy(args, s.defaults)
	args[0] = reflect.ValueOf(name).Convert(s.In[0])

	return s.call(args)
}

func (s *Strategy) call(args []reflect.Value) (instance reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = reflect.Value{}
			err = fmt.Errorf("%s panicked: %v", s.Name, r)
		}
	}()

	outs := s.fn.Call(args)
	if s.HasErr && !outs[1].IsNil() {
		return reflect.Value{}, outs[1].Interface().(error)
	}

	out := outs[0]
	if !s.returnsPtr {
		ptr := reflect.New(s.Type)
		ptr.Elem().Set(out)

		return ptr, nil
	}

	if out.IsNil() {
		return reflect.Value{}, fmt.Errorf("%s: %w", s.Name, ErrNilInstance)
	}

	return out, nil
}

// defaultValue converts a designated default to the parameter type. Untyped
// nil becomes the zero value; numbers convert between numeric kinds only.
func defaultValue(d any, in reflect.Type) (reflect.Value, error) {
	if d == nil {
		return reflect.Zero(in), nil
	}

	v := reflect.ValueOf(d)
	if v.Type().AssignableTo(in) {
		return v, nil
	}

	if isNumeric(v.Kind()) && isNumeric(in.Kind()) || v.Kind() == reflect.String && in.Kind() == reflect.String {
		return v.Convert(in), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrBadDefault, typeStr(v.Type()), typeStr(in))
}

func isNumeric(k reflect.Kind) bool {
	return common.InRange(reflect.Int, k, reflect.Float64)
}

// funcName returns "alias.Func" for a function value.
func funcName(fn reflect.Value) string {
	fnPC := runtime.FuncForPC(fn.Pointer())
	if fnPC == nil {
		return "<unknown>"
	}

	full := fnPC.Name()
	slash := strings.LastIndex(full, "/")
	pkgPath, name := common.Pair(strings.SplitN(full[slash+1:], ".", 2))
	if slash >= 0 {
		pkgPath = full[:slash+1] + pkgPath
	}

	return common.ShortQualified(pkgPath, name)
}
