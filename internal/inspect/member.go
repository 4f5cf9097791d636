package inspect

import (
	"fmt"
	"reflect"
	"strings"

	"typeprobe/internal/catalog"
)

//go:generate go tool stringer -type=MemberKind -linecomment -output=memberkind_string.go

// MemberKind tells properties and methods apart.
type MemberKind int

const (
	Property MemberKind = iota + 1 // property
	Method                         // method
)

// Param is one method parameter.
type Param struct {
	Name string
	Type reflect.Type
}

func (p Param) String() string {
	if p.Name == "" {
		return p.Type.String()
	}

	return p.Name + " " + p.Type.String()
}

// Member is an invocable property or method of a discovered type.
type Member struct {
	Kind MemberKind
	Name string
	// Declaring is the inspected type; promoted members are reported on it.
	Declaring catalog.TypeDescriptor

	// Type is the property type.
	Type reflect.Type
	// Index is the field index path for reflect.Value.FieldByIndexErr.
	Index []int

	// Func is the method expression on *T; the receiver is its first input.
	Func reflect.Value
	// Params excludes the receiver.
	Params []Param
	// Results excludes a trailing error.
	Results []reflect.Type
	// ReturnsError is set when the last result is an error.
	ReturnsError bool
	// Variadic is set when the last parameter is a ...T slice.
	Variadic bool
}

// IsProperty reports whether m is a property.
func (m Member) IsProperty() bool {
	return m.Kind == Property
}

// Signature renders the member the way it would be declared, e.g.
// "Rename(name string) error" or "Size int64".
func (m Member) Signature() string {
	if m.IsProperty() {
		return m.Name + " " + m.Type.String()
	}

	params := make([]string, 0, len(m.Params))
	for i, p := range m.Params {
		if m.Variadic && i == len(m.Params)-1 {
			elem := "..." + p.Type.Elem().String()
			if p.Name != "" {
				elem = p.Name + " " + elem
			}

			params = append(params, elem)

			continue
		}

		params = append(params, p.String())
	}

	results := make([]string, 0, len(m.Results)+1)
	for _, r := range m.Results {
		results = append(results, r.String())
	}

	if m.ReturnsError {
		results = append(results, "error")
	}

	sig := fmt.Sprintf("%s(%s)", m.Name, strings.Join(params, ", "))

	switch len(results) {
	case 0:
		return sig
	case 1:
		return sig + " " + results[0]
	default:
		return sig + " (" + strings.Join(results, ", ") + ")"
	}
}

func (m Member) String() string {
	return m.Declaring.ShortName() + "." + m.Name
}
