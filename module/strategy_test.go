package module_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeprobe/module"
)

type widget struct {
	Label string
	Size  int64
}

func newWidget(label string, size int64) *widget { return &widget{Label: label, Size: size} }

func widgetValue(label string) widget { return widget{Label: label} }

func checkedWidget(label string) (*widget, error) {
	if label == "" {
		return nil, errors.New("label required")
	}

	return &widget{Label: label}, nil
}

func nilWidget() *widget                   { return nil }
func panicWidget(string) *widget           { panic("boom") }
func doublePtr() **widget                  { panic("not implemented") }
func noResult(string)                      {}
func badSecond() (*widget, bool)           { panic("not implemented") }
func variadic(parts ...string) *widget     { panic("not implemented") }
func threeResults() (*widget, bool, error) { panic("not implemented") }

func ExampleParseStrategy() {
	s, err := module.ParseStrategy(newWidget, "default", 10)
	fmt.Println(err, s.Name, s.Type.Name(), len(s.In), s.HasErr, s.Primary())

	s, err = module.ParseStrategy(checkedWidget)
	fmt.Println(err, s.Name, s.Type.Name(), len(s.In), s.HasErr, s.Primary())

	s, err = module.ParseStrategy(strconv.Itoa)
	fmt.Println(err, s.Name, s.Type.Name(), len(s.In), s.HasErr, s.Primary())

	_, err = module.ParseStrategy(noResult)
	fmt.Println(err)

	_, err = module.ParseStrategy(doublePtr)
	fmt.Println(err)

	_, err = module.ParseStrategy("newWidget")
	fmt.Println(err)

	// Output:
	// <nil> module_test.newWidget widget 2 false true
	// <nil> module_test.checkedWidget widget 1 true true
	// <nil> strconv.Itoa string 1 false false
	// provided function is not a recognizable constructor
	// constructor does not support double pointers
	// provided constructor is not a function
}

func TestParseStrategy_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		fn       any
		defaults []any
		want     error
	}{
		{"nil", nil, nil, module.ErrNotAFunction},
		{"bad second result", badSecond, nil, module.ErrNotAConstructor},
		{"variadic", variadic, nil, module.ErrNotAConstructor},
		{"three results", threeResults, nil, module.ErrNotAConstructor},
		{"too many defaults", widgetValue, []any{"a", "b"}, module.ErrTooManyDefaults},
		{"bad default", newWidget, []any{1, 2}, module.ErrBadDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := module.ParseStrategy(tt.fn, tt.defaults...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStrategy_Build(t *testing.T) {
	s, err := module.ParseStrategy(newWidget, "TestWidget", 1024)
	require.NoError(t, err)

	v, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, &widget{Label: "TestWidget", Size: 1024}, v.Interface())

	v, err = s.BuildNamed("Other")
	require.NoError(t, err)
	assert.Equal(t, &widget{Label: "Other", Size: 1024}, v.Interface())
}

func TestStrategy_BuildValueResult(t *testing.T) {
	s, err := module.ParseStrategy(widgetValue)
	require.NoError(t, err)

	v, err := s.BuildNamed("x")
	require.NoError(t, err)
	assert.Equal(t, &widget{Label: "x"}, v.Interface(), "value results are returned addressable")
}

func TestStrategy_BuildMissingDefaultsAreZero(t *testing.T) {
	s, err := module.ParseStrategy(newWidget)
	require.NoError(t, err)

	v, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, &widget{}, v.Interface())
}

func TestStrategy_BuildFailures(t *testing.T) {
	t.Run("error result", func(t *testing.T) {
		s, err := module.ParseStrategy(checkedWidget)
		require.NoError(t, err)

		_, err = s.Build()
		assert.EqualError(t, err, "label required")
	})

	t.Run("panic", func(t *testing.T) {
		s, err := module.ParseStrategy(panicWidget)
		require.NoError(t, err)

		_, err = s.BuildNamed("x")
		assert.ErrorContains(t, err, "module_test.panicWidget panicked: boom")
	})

	t.Run("nil instance", func(t *testing.T) {
		s, err := module.ParseStrategy(nilWidget)
		require.NoError(t, err)

		_, err = s.Build()
		assert.ErrorIs(t, err, module.ErrNilInstance)
	})

	t.Run("no primary", func(t *testing.T) {
		s, err := module.ParseStrategy(nilWidget)
		require.NoError(t, err)

		_, err = s.BuildNamed("x")
		assert.ErrorIs(t, err, module.ErrNoPrimary)
	})
}
