package module_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeprobe/module"
)

type shape interface{ Area() float64 }

type square struct{ Side float64 }

func (s *square) Area() float64 { return s.Side * s.Side }

type gadget struct{ Serial string }

func TestNew(t *testing.T) {
	m := module.New("shapes",
		module.Marker[shape](),
		module.Type[shape](),
		module.Type[square](module.ParamNames("Scale", "factor")),
		module.Type[widget](module.Constructor(newWidget, "w", 1)),
		module.Type[gadget](module.ZeroInvalid()),
	)
	require.NoError(t, m.Err())

	assert.Equal(t, "shapes", m.Name())
	assert.Equal(t, reflect.TypeFor[shape](), m.Marker())

	var names []string
	for _, e := range m.Exports() {
		names = append(names, e.Type.Name())
	}
	assert.Equal(t, []string{"shape", "square", "widget", "gadget"}, names)

	sq, ok := m.Export(reflect.TypeFor[*square]())
	require.True(t, ok)
	assert.Equal(t, "typeprobe/module_test.square", sq.Name())
	assert.Equal(t, "factor", sq.ParamName("Scale", 0))
	assert.Equal(t, "arg1", sq.ParamName("Scale", 1))
	assert.True(t, sq.ZeroValid())
	assert.Nil(t, sq.Strategy)

	sh, ok := m.Lookup("shape")
	require.True(t, ok)
	assert.True(t, sh.Abstract())
	assert.False(t, sh.ZeroValid())

	w, ok := m.Lookup("typeprobe/module_test.widget")
	require.True(t, ok)
	require.NotNil(t, w.Strategy)
	assert.Equal(t, "module_test.newWidget", w.Strategy.Name)

	g, _ := m.Lookup("gadget")
	assert.False(t, g.ZeroValid())

	_, ok = m.Lookup("circle")
	assert.False(t, ok)
}

func TestNew_CollectsErrors(t *testing.T) {
	m := module.New("",
		module.Marker[square](),
		module.Type[*square](),
		module.Type[struct{ X int }](),
		module.Type[widget](),
		module.Type[widget](),
		module.Type[gadget](module.Constructor(newWidget)),
	)

	err := m.Err()
	require.Error(t, err)

	for _, want := range []string{
		"module name cannot be empty",
		"marker typeprobe/module_test.square is not an interface",
		"pointer types cannot be exported",
		"type must be named",
		"exported twice",
		"constructor module_test.newWidget builds typeprobe/module_test.widget",
	} {
		assert.ErrorContains(t, err, want)
	}

	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), `module "": module name cannot be empty; marker `)

	assert.Len(t, m.Exports(), 1)
}

func TestRegister(t *testing.T) {
	name := fmt.Sprintf("registry-test-%s", t.Name())
	m := module.New(name, module.Type[square]())

	module.Register(m)

	got, ok := module.Lookup(name)
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Contains(t, module.Names(), name)

	assert.Panics(t, func() { module.Register(m) }, "duplicate")
	assert.Panics(t, func() { module.Register(nil) })
	assert.Panics(t, func() { module.Register(module.New("broken", module.Type[*square]())) })

	_, ok = module.Lookup("broken")
	assert.False(t, ok)
}
