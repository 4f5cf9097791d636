package invoke_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeprobe/fsmodel"
	"typeprobe/internal/catalog"
	"typeprobe/internal/inspect"
	"typeprobe/internal/invoke"
	"typeprobe/internal/testutil"
)

func members(t *testing.T, typeName string) map[string]inspect.Member {
	t.Helper()

	c := catalog.New()
	h, err := c.Load(fsmodel.ModuleName)
	require.NoError(t, err)

	for _, td := range c.Discover(h, nil) {
		if td.ShortName() != typeName {
			continue
		}

		list, err := inspect.New(c, nil).Members(td)
		require.NoError(t, err)

		out := make(map[string]inspect.Member, len(list))
		for _, m := range list {
			out[m.Name] = m
		}

		return out
	}

	t.Fatalf("type %s not found", typeName)

	return nil
}

func args(values ...any) []reflect.Value {
	out := make([]reflect.Value, 0, len(values))
	for _, v := range values {
		out = append(out, reflect.ValueOf(v))
	}

	return out
}

func TestInvokeMethod_RenameThenRead(t *testing.T) {
	m := members(t, "Folder")
	iv := invoke.New(testutil.NewTestLogger(t))
	folder := reflect.ValueOf(fsmodel.NewFolder("TestFolder", nil))

	res, err := iv.InvokeMethod(folder, m["Rename"], args("Reports"))
	require.NoError(t, err)
	assert.True(t, res.Void)
	assert.Equal(t, "void", res.String())

	res, err = iv.ReadProperty(folder, m["Name"])
	require.NoError(t, err)
	assert.Equal(t, "Reports", res.String())
}

func TestInvokeMethod_Results(t *testing.T) {
	m := members(t, "File")
	iv := invoke.New(nil)
	file := reflect.ValueOf(fsmodel.NewFile("a.txt", nil, 100))

	res, err := iv.InvokeMethod(file, m["Extension"], nil)
	require.NoError(t, err)
	assert.Equal(t, "txt", res.String())

	res, err = iv.InvokeMethod(file, m["Split"], nil)
	require.NoError(t, err)
	assert.Equal(t, "(50, 50)", res.String())
	assert.Len(t, res.Values, 2)

	res, err = iv.InvokeMethod(file, m["Compress"], args(0.5))
	require.NoError(t, err)
	assert.Equal(t, "50", res.String(), "trailing nil error is dropped")

	res, err = iv.ReadProperty(file, m["Mode"])
	require.NoError(t, err)
	assert.Equal(t, "-rw-r--r--", res.String(), "Stringer values use String")

	res, err = iv.ReadProperty(file, m["Parent"])
	require.NoError(t, err)
	assert.Equal(t, "<nil>", res.String())
}

func TestInvokeMethod_FailureIsolation(t *testing.T) {
	iv := invoke.New(nil)

	file := reflect.ValueOf(fsmodel.NewFile("a.txt", nil, 100))
	fm := members(t, "File")

	_, err := iv.InvokeMethod(file, fm["Resize"], args(int64(-5)))

	var ie *invoke.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, invoke.TargetThrew, ie.Kind)
	assert.False(t, ie.Panicked)
	assert.ErrorIs(t, err, fsmodel.ErrNegativeSize)
	assert.Equal(t, "File.Resize: resize a.txt to -5: size cannot be negative", ie.Message())

	shortcut := reflect.ValueOf(&fsmodel.Shortcut{})
	_, err = iv.InvokeMethod(shortcut, members(t, "Shortcut")["Follow"], nil)
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, invoke.TargetThrew, ie.Kind)
	assert.True(t, ie.Panicked)
	assert.Contains(t, ie.Message(), "Shortcut.Follow panicked")
	assert.Equal(t, "invoke", ie.Stage())

	res, err := iv.InvokeMethod(file, fm["Resize"], args(int64(10)))
	require.NoError(t, err, "later calls are unaffected")
	assert.True(t, res.Void)
	assert.EqualValues(t, 10, file.Interface().(*fsmodel.File).Size)
}

func TestInvokeMethod_Guards(t *testing.T) {
	iv := invoke.New(nil)
	fm := members(t, "File")
	file := reflect.ValueOf(fsmodel.NewFile("a.txt", nil, 100))

	_, err := iv.InvokeMethod(file, fm["Resize"], nil)

	var ie *invoke.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, invoke.ArityMismatch, ie.Kind)
	assert.Equal(t, "InvocationError.ArityMismatch: File.Resize takes 1 arguments, got 0", err.Error())

	_, err = iv.InvokeMethod(reflect.ValueOf(fsmodel.NewFolder("x", nil)), fm["Extension"], nil)
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, invoke.TargetThrew, ie.Kind)

	_, err = iv.InvokeMethod(file, fm["Size"], nil)
	require.ErrorAs(t, err, &ie)

	_, err = iv.ReadProperty(file, fm["Resize"])
	require.ErrorAs(t, err, &ie)
}

type holder struct {
	*fsmodel.Item
	Other int
}

func TestReadProperty_NilEmbedded(t *testing.T) {
	m := inspect.Member{Kind: inspect.Property, Name: "Name", Index: []int{0, 0}}

	_, err := invoke.New(nil).ReadProperty(reflect.ValueOf(&holder{}), m)

	var ie *invoke.InvocationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, invoke.TargetThrew, ie.Kind)
	assert.False(t, ie.Panicked)
}

type pair struct {
	Key   string
	Count int
}

type counter struct{ Total int }

func (c *counter) Add(xs ...int) int {
	for _, x := range xs {
		c.Total += x
	}

	return c.Total
}

type broken struct{ Ref *counter }

func (b broken) String() string { return fmt.Sprint(b.Ref.Total) }

func TestInvokeMethod_Variadic(t *testing.T) {
	add := inspect.Member{
		Kind:     inspect.Method,
		Name:     "Add",
		Func:     reflect.ValueOf((*counter).Add),
		Params:   []inspect.Param{{Name: "xs", Type: reflect.TypeFor[[]int]()}},
		Results:  []reflect.Type{reflect.TypeFor[int]()},
		Variadic: true,
	}
	assert.Equal(t, "Add(xs ...int) int", add.Signature())

	iv := invoke.New(testutil.NewTestLogger(t))
	c := reflect.ValueOf(&counter{})

	res, err := iv.InvokeMethod(c, add, args([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "6", res.String())

	res, err = iv.InvokeMethod(c, add, args([]int(nil)))
	require.NoError(t, err)
	assert.Equal(t, "6", res.String())
}

func TestFormat_RecoversPanics(t *testing.T) {
	var text string
	require.NotPanics(t, func() { text = invoke.Format(reflect.ValueOf(broken{})) })
	assert.Equal(t, "<String() panicked: runtime error: invalid memory address or nil pointer dereference>", text)

	assert.Equal(t, "3", invoke.Format(reflect.ValueOf(broken{Ref: &counter{Total: 3}})))
}

func TestFormat(t *testing.T) {
	var nilFolder *fsmodel.Folder

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "abc", "abc"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"error", errors.New("boom"), "boom"},
		{"stringer", fsmodel.NewFolder("docs", nil), "/docs"},
		{"nil pointer", nilFolder, "<nil>"},
		{"nil slice", []string(nil), "<nil>"},
		{"slice", []string{"a", "b"}, "[a b]"},
		{"map", map[string]int{"b": 2, "a": 1}, "map[a:1 b:2]"},
		{"struct", pair{Key: "k", Count: 1}, "{k 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoke.Format(reflect.ValueOf(tt.in)))
		})
	}

	assert.Equal(t, "<nil>", invoke.Format(reflect.Value{}))
}
