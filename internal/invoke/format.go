package invoke

import (
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"typeprobe/primitive"
)

var (
	errorType    = reflect.TypeFor[error]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

var printer = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// Format renders a value for reports: errors and fmt.Stringer values by
// their text, scalars with fmt, nil as "<nil>" and everything else with
// go-spew. A panic in the value's own formatting is rendered, not raised.
func Format(v reflect.Value) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("<%s panicked: %v>", formatter(v), r)
		}
	}()

	if !v.IsValid() {
		return "<nil>"
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return "<nil>"
		}
	}

	if !v.CanInterface() {
		return fmt.Sprint(v)
	}

	x := v.Interface()
	switch x := x.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	kind := primitive.FromReflectType(v.Type())
	if kind.IsNumber() || kind == primitive.KindBool || kind == primitive.KindString {
		return fmt.Sprint(x)
	}

	return printer.Sprintf("%v", x)
}

func formatter(v reflect.Value) string {
	if v.Type().Implements(errorType) {
		return "Error()"
	}

	if v.Type().Implements(stringerType) {
		return "String()"
	}

	return "format"
}
