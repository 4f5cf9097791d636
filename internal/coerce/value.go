package coerce

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value is a coerced argument. The set of implementations is closed:
// Text, Integer, Unsigned, Float, Boolean, Domain, Converted and Absent.
type Value interface {
	// Reflect returns the value as t, ready to be passed to a call.
	Reflect(t reflect.Type) reflect.Value
	String() string

	sealed()
}

type (
	// Text is passed through unchanged.
	Text string
	// Integer is a parsed signed integer.
	Integer int64
	// Unsigned is a parsed unsigned integer.
	Unsigned uint64
	// Float is a parsed floating point number.
	Float float64
	// Boolean is a parsed true or false literal.
	Boolean bool
	// Domain is an instance built by a module constructor; V holds *T.
	Domain struct{ V reflect.Value }
	// Converted is a value produced by generic conversion, or a zero value.
	Converted struct{ V reflect.Value }
	// Absent is the missing value of a reference type: nil.
	Absent struct{}
)

func (Text) sealed()      {}
func (Integer) sealed()   {}
func (Unsigned) sealed()  {}
func (Float) sealed()     {}
func (Boolean) sealed()   {}
func (Domain) sealed()    {}
func (Converted) sealed() {}
func (Absent) sealed()    {}

func (v Text) Reflect(t reflect.Type) reflect.Value     { return assign(t, reflect.ValueOf(string(v))) }
func (v Integer) Reflect(t reflect.Type) reflect.Value  { return assign(t, reflect.ValueOf(int64(v))) }
func (v Unsigned) Reflect(t reflect.Type) reflect.Value { return assign(t, reflect.ValueOf(uint64(v))) }
func (v Float) Reflect(t reflect.Type) reflect.Value    { return assign(t, reflect.ValueOf(float64(v))) }
func (v Boolean) Reflect(t reflect.Type) reflect.Value  { return assign(t, reflect.ValueOf(bool(v))) }
func (v Converted) Reflect(t reflect.Type) reflect.Value {
	return assign(t, v.V)
}

// Reflect passes the pointer for pointer targets and the pointed-to value
// otherwise.
func (v Domain) Reflect(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Ptr || v.V.Kind() != reflect.Ptr {
		return assign(t, v.V)
	}

	return assign(t, v.V.Elem())
}

func (Absent) Reflect(t reflect.Type) reflect.Value {
	return reflect.Zero(t)
}

func (v Text) String() string     { return strconv.Quote(string(v)) }
func (v Integer) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Unsigned) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v Float) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Boolean) String() string  { return strconv.FormatBool(bool(v)) }
func (v Domain) String() string   { return fmt.Sprintf("%v", v.V) }
func (Absent) String() string     { return "<nil>" }

func (v Converted) String() string {
	if !v.V.IsValid() {
		return "<invalid>"
	}

	return fmt.Sprintf("%v", v.V)
}

// assign converts v to t. Interface targets receive v as is.
func assign(t reflect.Type, v reflect.Value) reflect.Value {
	out := reflect.New(t).Elem()
	if !v.IsValid() {
		return out
	}

	if v.Type().AssignableTo(t) {
		out.Set(v)
	} else {
		out.Set(v.Convert(t))
	}

	return out
}
