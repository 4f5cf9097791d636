package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeprobe/fsmodel"
	"typeprobe/internal/catalog"
	"typeprobe/internal/engine"
	"typeprobe/internal/render"
	"typeprobe/internal/script"
	"typeprobe/internal/source"
	"typeprobe/internal/testutil"
)

func newSession(t *testing.T) *engine.Session {
	t.Helper()

	s := engine.NewSession(engine.WithLogger(testutil.NewTestLogger(t)))
	_, err := s.Load(context.Background(), fsmodel.ModuleName)
	require.NoError(t, err)

	return s
}

func types(t *testing.T, s *engine.Session) []catalog.TypeDescriptor {
	t.Helper()

	types, err := s.Types()
	require.NoError(t, err)

	return types
}

func TestRenderer_TypesText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, render.New(&buf, render.ModeText).Types(types(t, newSession(t))))

	out := buf.String()
	assert.Contains(t, out, "typeprobe/fsmodel.Folder")
	assert.Contains(t, out, "Shortcut")
	assert.Contains(t, out, "(5 types)")

	buf.Reset()
	require.NoError(t, render.New(&buf, render.ModeText).Types(nil))
	assert.Equal(t, "(0 types)\n", buf.String())
}

func TestRenderer_TypesJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, render.New(&buf, render.ModeJSON).Types(types(t, newSession(t))))

	var got []render.TypeView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)

	assert.Equal(t, render.TypeView{
		Name:     "typeprobe/fsmodel.Folder",
		Short:    "Folder",
		Module:   fsmodel.ModuleName,
		Linked:   true,
		Strategy: true,
	}, got[1])
	assert.False(t, got[3].Strategy, "Archive has no strategy")
}

func TestRenderer_Members(t *testing.T) {
	s := newSession(t)

	td, err := s.ResolveType("Folder")
	require.NoError(t, err)

	members, err := s.Members(td)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.New(&buf, render.ModeText).Members(td, members))
	assert.Contains(t, buf.String(), "Rename(name string) error")
	assert.Contains(t, buf.String(), "Name string")

	buf.Reset()
	require.NoError(t, render.New(&buf, render.ModeJSON).Members(td, members))

	var got render.MembersView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "typeprobe/fsmodel.Folder", got.Type)
	assert.Len(t, got.Members, len(members))
	assert.Contains(t, got.Members, render.MemberView{Kind: "method", Name: "Hide", Signature: "Hide(hidden bool)"})
}

func TestRenderer_Report(t *testing.T) {
	s := newSession(t)

	tests := []struct {
		name   string
		report engine.Report
		opts   []render.Option
		want   []string
	}{
		{
			name:   "void",
			report: s.InvokeByName("Folder", "Rename", "Reports"),
			want:   []string{"result: void\ninstance: /Reports\n"},
		},
		{
			name:   "failure",
			report: s.InvokeByName("File", "Resize", "abc"),
			want:   []string{"coerce: CoercionError.BadFormat: parameter 1 (int64)"},
		},
		{
			name:   "warning",
			report: s.InvokeByName("Shortcut", "Kind", "x"),
			want:   []string{"warning: "},
		},
		{
			name:   "dump",
			report: s.InvokeByName("File", "Split", ""),
			opts:   []render.Option{render.WithDump(true)},
			want:   []string{"result: (512, 512)", "(int64) 512\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, render.New(&buf, render.ModeText, tt.opts...).Report(tt.report))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderer_ReportJSON(t *testing.T) {
	s := newSession(t)

	var buf bytes.Buffer
	r := render.New(&buf, render.ModeJSON)
	require.NoError(t, r.Report(s.InvokeByName("Foldr", "Name", "")))

	var got render.ReportView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.OK)
	require.NotNil(t, got.Error)
	assert.Equal(t, "lookup", got.Error.Stage)
	assert.Equal(t, "LookupError.UnknownType", got.Error.Code)
	assert.Contains(t, got.Error.Suggestions, "Folder")

	buf.Reset()
	require.NoError(t, r.Report(s.InvokeByName("Folder", "Count", "")))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Equal(t, "0", got.Result)
	assert.Equal(t, "/TestFolder", got.Instance)
}

func TestRenderer_Run(t *testing.T) {
	sc, err := script.Parse([]byte(`
modules: fsmodel
steps:
  - type: Folder
    member: Rename
    params: Reports
  - reset: true
  - type: Folder
    member: Name
    expect:
      result: Reports
`))
	require.NoError(t, err)

	log := testutil.NewTestLogger(t)
	run, err := script.NewRunner(engine.NewSession(engine.WithLogger(log)), script.WithLogger(log)).Run(context.Background(), sc)
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.New(&buf, render.ModeText).Run(run))
	assert.Contains(t, buf.String(), "Folder.Rename")
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "(3 steps, 1 failed)")

	buf.Reset()
	require.NoError(t, render.New(&buf, render.ModeJSON).Run(run))

	var got render.RunView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.OK)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Steps, 3)
	assert.True(t, got.Steps[1].Reset)
	assert.Nil(t, got.Steps[1].Report)
	assert.Contains(t, got.Steps[2].Mismatch, `expected result "Reports", got "TestFolder"`)
}

func TestRenderer_RunLoadFailure(t *testing.T) {
	sc, err := script.Parse([]byte("modules: missing.so\nsteps:\n  - type: A\n    member: B\n"))
	require.NoError(t, err)

	run, err := script.NewRunner(engine.NewSession()).Run(context.Background(), sc)
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.New(&buf, render.ModeText).Run(run))
	assert.Contains(t, buf.String(), "error: load: LoadError.NotFound")
}

func TestRenderer_Source(t *testing.T) {
	ti := &source.TypeInfo{
		ID:        source.TypeID{PkgPath: "example.com/notes", Name: "Note"},
		Kind:      source.TypeKindStruct,
		Doc:       "Note is a short text.\nIt has a title.",
		NeedsInit: true,
		Fields:    []source.FieldInfo{{Name: "Title", Type: "string"}},
		Methods: []source.MethodInfo{
			{Name: "Edit", Params: []source.ParamInfo{{Name: "text", Type: "string"}}, ReturnsError: true},
		},
		Constructors: []source.FuncInfo{
			{Name: "NewNote", Params: []source.ParamInfo{{Name: "title", Type: "string"}}, ReturnsPtr: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, render.New(&buf, render.ModeText).Source([]*source.TypeInfo{ti}))

	out := buf.String()
	assert.Contains(t, out, "example.com/notes.Note (struct) [zero value invalid]\n")
	assert.Contains(t, out, "  Note is a short text.\n")
	assert.NotContains(t, out, "It has a title.")
	assert.Contains(t, out, "Title string")
	assert.Contains(t, out, "Edit(text string) error")
	assert.Contains(t, out, "NewNote(title string) *Note")

	buf.Reset()
	require.NoError(t, render.New(&buf, render.ModeJSON).Source([]*source.TypeInfo{ti}))

	var got []render.SourceTypeView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"NewNote(title string) *Note"}, got[0].Constructors)
	assert.True(t, got[0].NeedsInit)
}

func TestSignatures(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "no results",
			got:  render.MethodSignature(source.MethodInfo{Name: "Hide", Params: []source.ParamInfo{{Name: "hidden", Type: "bool"}}}),
			want: "Hide(hidden bool)",
		},
		{
			name: "tuple with error",
			got:  render.MethodSignature(source.MethodInfo{Name: "Compress", Params: []source.ParamInfo{{Type: "float64"}}, Results: []string{"int64"}, ReturnsError: true}),
			want: "Compress(float64) (int64, error)",
		},
		{
			name: "constructor with error",
			got:  render.FuncSignature(source.FuncInfo{Name: "Open", ReturnsErr: true}, "Store"),
			want: "Open() (Store, error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRenderer_Note(t *testing.T) {
	var buf bytes.Buffer

	render.New(&buf, render.ModeText).Note("using existing instance: %s", "/Reports")
	render.New(&buf, render.ModeJSON).Note("dropped")

	assert.Equal(t, "using existing instance: /Reports\n", buf.String())
}
