package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeprobe/fsmodel"
	"typeprobe/internal/engine"
	"typeprobe/internal/testutil"
	"typeprobe/module"
)

const fixturesModule = "engine-fixtures"

type label struct{ Text string }

// node renders through its reference, which the zero value leaves nil.
type node struct{ Ref *label }

func (n *node) String() string { return n.Ref.Text }
func (n *node) Ping() string   { return "pong" }

type adder struct{ Total int }

func (a *adder) Sum(xs ...int) int {
	for _, x := range xs {
		a.Total += x
	}

	return a.Total
}

func init() {
	module.Register(module.New(fixturesModule, module.Type[node](), module.Type[adder]()))
}

func newSession(t *testing.T, opts ...engine.Option) *engine.Session {
	t.Helper()

	opts = append([]engine.Option{engine.WithLogger(testutil.NewTestLogger(t))}, opts...)
	s := engine.NewSession(opts...)

	_, err := s.Load(context.Background(), fsmodel.ModuleName)
	require.NoError(t, err)

	return s
}

func TestSession_Types(t *testing.T) {
	s := newSession(t)

	types, err := s.Types()
	require.NoError(t, err)

	names := make([]string, 0, len(types))
	for _, td := range types {
		names = append(names, td.ShortName())
	}

	assert.Equal(t, []string{"Document", "Folder", "File", "Archive", "Shortcut"}, names)
	assert.NotEmpty(t, s.ID)
}

func TestSession_RenameThenReadName(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Folder", "Rename", "Reports")
	require.True(t, report.OK(), report.String())
	assert.True(t, report.Result.Void)
	assert.Equal(t, "result: void\ninstance: /Reports", report.String())

	report = s.InvokeByName("folder", "name", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "Reports", report.Result.Text)
}

func TestSession_BadFormatSkipsInvocation(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("File", "Resize", "abc")
	require.False(t, report.OK())
	assert.Equal(t, "coerce", report.Diagnostic.Stage)
	assert.Equal(t, "CoercionError.BadFormat", report.Diagnostic.Code)
	assert.Equal(t, `coerce: CoercionError.BadFormat: parameter 1 (int64): cannot parse "abc": invalid syntax`, report.String())

	report = s.InvokeByName("File", "Size", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "1024", report.Result.Text)
}

func TestSession_NoStrategy(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Archive", "Pack", "notes.txt")
	require.False(t, report.OK())
	assert.Equal(t, "construct", report.Diagnostic.Stage)
	assert.Equal(t, "ConstructionError.NoStrategy", report.Diagnostic.Code)
	assert.Contains(t, report.Diagnostic.Message, "fsmodel.Archive")
}

func TestSession_MissingParametersTakeDefaults(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Document", "Append", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "0", report.Result.Text)

	report = s.InvokeByName("Folder", "Hide", "")
	require.True(t, report.OK(), report.String())

	report = s.InvokeByName("Folder", "Hidden", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "false", report.Result.Text)
}

func TestSession_ExtraParametersIgnored(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Folder", "Rename", "Archive, Backup")
	require.True(t, report.OK(), report.String())
	assert.Len(t, report.Warnings, 1)
	assert.Equal(t, "result: void\ninstance: /Archive", report.String())
}

func TestSession_FailureIsolation(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Shortcut", "Follow", "")
	require.False(t, report.OK())
	assert.Equal(t, "InvocationError.TargetThrew", report.Diagnostic.Code)
	assert.Contains(t, report.Diagnostic.Message, "panicked")

	report = s.InvokeByName("File", "Resize", "-5")
	require.False(t, report.OK())
	assert.Equal(t, "InvocationError.TargetThrew", report.Diagnostic.Code)
	assert.Contains(t, report.Diagnostic.Message, fsmodel.ErrNegativeSize.Error())

	report = s.InvokeByName("File", "Resize", "10")
	require.True(t, report.OK(), report.String())

	report = s.InvokeByName("File", "Size", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "10", report.Result.Text)
}

func TestSession_DomainArgument(t *testing.T) {
	s := newSession(t)

	report := s.InvokeByName("Folder", "Move", "Root")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "result: /Root/TestFolder\ninstance: /Root/TestFolder", report.String())
}

func TestSession_Lookup(t *testing.T) {
	s := newSession(t)

	tests := []struct {
		name     string
		typeName string
		member   string
		code     string
		hint     string
	}{
		{name: "type typo", typeName: "Foldr", member: "Count", code: "LookupError.UnknownType", hint: "Folder"},
		{name: "member typo", typeName: "Folder", member: "Renmae", code: "LookupError.UnknownMember", hint: "Rename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := s.InvokeByName(tt.typeName, tt.member, "")
			require.False(t, report.OK())
			assert.Equal(t, "lookup", report.Diagnostic.Stage)
			assert.Equal(t, tt.code, report.Diagnostic.Code)
			assert.Contains(t, report.Diagnostic.Suggestions, tt.hint)
			assert.LessOrEqual(t, len(report.Diagnostic.Suggestions), engine.MaxSuggestions)
		})
	}
}

func TestSession_ResolveQualified(t *testing.T) {
	s := newSession(t)

	for _, name := range []string{"typeprobe/fsmodel.File", "fsmodel.File", "file"} {
		td, err := s.ResolveType(name)
		require.NoError(t, err, name)
		assert.Equal(t, "File", td.ShortName())
	}
}

func TestSession_SelectAndReset(t *testing.T) {
	s := newSession(t)

	td, err := s.ResolveType("Folder")
	require.NoError(t, err)
	assert.Empty(t, s.Select(td))

	_, err = s.Instance(td)
	require.NoError(t, err)
	assert.Equal(t, "using existing instance: /TestFolder", s.Select(td))

	s.Reset()
	assert.Empty(t, s.Select(td))
}

func TestSession_Marker(t *testing.T) {
	s := newSession(t, engine.WithMarker("Entry"))

	types, err := s.Types()
	require.NoError(t, err)
	assert.Len(t, types, 5)

	s = newSession(t, engine.WithMarker("Item"))

	_, err = s.Types()
	require.Error(t, err)
}

func TestSession_LoadFailure(t *testing.T) {
	s := engine.NewSession(engine.WithLogger(testutil.NewTestLogger(t)))

	_, err := s.Load(context.Background(), "missing.so")
	require.Error(t, err)

	report := s.InvokeByName("Folder", "Count", "")
	require.False(t, report.OK())
	assert.Equal(t, "LookupError.UnknownType", report.Diagnostic.Code)
	assert.Empty(t, report.Diagnostic.Suggestions)
}

func TestSplitParams(t *testing.T) {
	assert.Nil(t, engine.SplitParams("  "))
	assert.Equal(t, []string{"a", " b", ""}, engine.SplitParams("a, b,"))
}

func newFixturesSession(t *testing.T) *engine.Session {
	t.Helper()

	s := engine.NewSession(engine.WithLogger(testutil.NewTestLogger(t)))
	_, err := s.Load(context.Background(), fixturesModule)
	require.NoError(t, err)

	return s
}

func TestSession_PanickingStringer(t *testing.T) {
	s := newFixturesSession(t)

	var report engine.Report
	require.NotPanics(t, func() { report = s.InvokeByName("node", "Ping", "") })
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "pong", report.Result.Text)
	assert.Contains(t, report.Instance, "<String() panicked: runtime error: invalid memory address")

	td, err := s.ResolveType("node")
	require.NoError(t, err)

	var note string
	require.NotPanics(t, func() { note = s.Select(td) })
	assert.Contains(t, note, "using existing instance: <String() panicked:")
}

func TestSession_VariadicMethod(t *testing.T) {
	s := newFixturesSession(t)

	report := s.InvokeByName("adder", "Sum", "1;2;3")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "6", report.Result.Text)

	report = s.InvokeByName("adder", "Sum", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "6", report.Result.Text)

	report = s.InvokeByName("adder", "Total", "")
	require.True(t, report.OK(), report.String())
	assert.Equal(t, "6", report.Result.Text)
}
