// Package invoke calls methods and reads properties on instances and turns
// the outcome into report text.
package invoke

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"typeprobe/internal/inspect"
)

// Void is the text of a successful call without results.
const Void = "void"

// Result is the outcome of a successful invocation.
type Result struct {
	// Void is set when the member returned nothing but a nil error.
	Void bool
	// Text is the formatted return value; a tuple "(a, b)" for several.
	Text string
	// Values are the returned values without the trailing error.
	Values []reflect.Value
}

func (r Result) String() string {
	if r.Void {
		return Void
	}

	return r.Text
}

// Invoker dispatches member calls. It keeps no state between calls and
// does not roll back an instance after a failure.
type Invoker struct {
	log *slog.Logger
}

// New creates an Invoker.
func New(log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.Default()
	}

	return &Invoker{log: log}
}

// InvokeMethod calls m on instance (a *T) with args. The argument of a
// variadic parameter is the whole slice. A panic or a non-nil trailing error
// becomes a TargetThrew failure.
func (iv *Invoker) InvokeMethod(instance reflect.Value, m inspect.Member, args []reflect.Value) (res Result, err error) {
	if m.Kind != inspect.Method {
		return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: errors.New("not a method")}
	}

	if len(args) != len(m.Params) {
		return Result{}, &InvocationError{Kind: ArityMismatch, Member: m.String(), Want: len(m.Params), Got: len(args)}
	}

	if recv := m.Func.Type().In(0); !instance.IsValid() || instance.Type() != recv {
		return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: fmt.Errorf("instance is not a %s", recv)}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &InvocationError{Kind: TargetThrew, Member: m.String(), Panicked: true, Err: panicError(r)}
		}
	}()

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, instance)
	in = append(in, args...)

	iv.log.Debug("invoking method", slog.String("member", m.String()), slog.Int("args", len(args)))

	var out []reflect.Value
	if m.Func.Type().IsVariadic() {
		out = m.Func.CallSlice(in)
	} else {
		out = m.Func.Call(in)
	}
	if m.ReturnsError {
		last := out[len(out)-1]
		out = out[:len(out)-1]

		if !last.IsNil() {
			return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: last.Interface().(error)}
		}
	}

	return result(out), nil
}

// ReadProperty returns the value of property m of instance (a *T).
func (iv *Invoker) ReadProperty(instance reflect.Value, m inspect.Member) (res Result, err error) {
	if m.Kind != inspect.Property {
		return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: errors.New("not a property")}
	}

	if !instance.IsValid() || instance.Kind() != reflect.Ptr || instance.IsNil() {
		return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: errors.New("no instance")}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &InvocationError{Kind: TargetThrew, Member: m.String(), Panicked: true, Err: panicError(r)}
		}
	}()

	iv.log.Debug("reading property", slog.String("member", m.String()))

	v, err := instance.Elem().FieldByIndexErr(m.Index)
	if err != nil {
		return Result{}, &InvocationError{Kind: TargetThrew, Member: m.String(), Err: err}
	}

	return Result{Text: Format(v), Values: []reflect.Value{v}}, nil
}

func result(out []reflect.Value) Result {
	switch len(out) {
	case 0:
		return Result{Void: true}
	case 1:
		return Result{Text: Format(out[0]), Values: out}
	}

	parts := make([]string, 0, len(out))
	for _, v := range out {
		parts = append(parts, Format(v))
	}

	return Result{Text: "(" + strings.Join(parts, ", ") + ")", Values: out}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}

	return fmt.Errorf("%v", r)
}
