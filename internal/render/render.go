// Package render writes session output as text tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"

	"typeprobe/internal/catalog"
	"typeprobe/internal/engine"
	"typeprobe/internal/inspect"
	"typeprobe/internal/script"
	"typeprobe/internal/source"
)

// Output modes.
const (
	ModeText = "text"
	ModeJSON = "json"
)

// Renderer writes to one writer in one mode.
type Renderer struct {
	out  io.Writer
	mode string
	dump bool
}

// Option configures a Renderer.
type Option func(r *Renderer)

// WithDump appends a spew dump of returned values to text reports.
func WithDump(dump bool) Option {
	return func(r *Renderer) {
		r.dump = dump
	}
}

// New creates a Renderer. Unknown modes render as text.
func New(w io.Writer, mode string, opts ...Option) *Renderer {
	r := &Renderer{out: w, mode: mode}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// JSON reports whether the renderer writes JSON.
func (r *Renderer) JSON() bool {
	return r.mode == ModeJSON
}

// Note writes a single informational line in text mode. JSON output stays
// machine readable, so notes are dropped there.
func (r *Renderer) Note(format string, args ...any) {
	if r.JSON() {
		return
	}

	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Types renders discovered types in discovery order.
func (r *Renderer) Types(types []catalog.TypeDescriptor) error {
	if r.JSON() {
		views := make([]TypeView, 0, len(types))
		for _, td := range types {
			views = append(views, typeView(td))
		}

		return r.encode(views)
	}

	if len(types) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 types)")
		return nil
	}

	t := r.table()
	t.AppendHeader(table.Row{"#", "Type", "Name", "Module"})

	for i, td := range types {
		t.AppendRow(table.Row{i + 1, td.ShortName(), td.Name, td.Handle.Name()})
	}

	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d types)\n", len(types))

	return nil
}

// Members renders the members of td in inspection order.
func (r *Renderer) Members(td catalog.TypeDescriptor, members []inspect.Member) error {
	if r.JSON() {
		views := make([]MemberView, 0, len(members))
		for _, m := range members {
			views = append(views, memberView(m))
		}

		return r.encode(MembersView{Type: td.Name, Members: views})
	}

	_, _ = fmt.Fprintf(r.out, "%s\n", td.Name)

	if len(members) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 members)")
		return nil
	}

	t := r.table()
	t.AppendHeader(table.Row{"#", "Kind", "Member", "Signature"})

	for i, m := range members {
		t.AppendRow(table.Row{i + 1, m.Kind.String(), m.Name, m.Signature()})
	}

	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d members)\n", len(members))

	return nil
}

// Report renders one invocation outcome.
func (r *Renderer) Report(rep engine.Report) error {
	if r.JSON() {
		return r.encode(reportView(rep))
	}

	for _, w := range rep.Warnings {
		_, _ = fmt.Fprintf(r.out, "warning: %s\n", w)
	}

	_, _ = fmt.Fprintln(r.out, rep.String())

	if r.dump && rep.OK() {
		for _, v := range rep.Result.Values {
			if v.IsValid() && v.CanInterface() {
				_, _ = io.WriteString(r.out, spew.Sdump(v.Interface()))
			}
		}
	}

	return nil
}

// Run renders the outcome of a script run.
func (r *Renderer) Run(run *script.Run) error {
	if r.JSON() {
		return r.encode(runView(run))
	}

	for _, w := range run.Diagnostics.Warnings {
		_, _ = fmt.Fprintf(r.out, "warning: %s\n", w.String())
	}

	if len(run.Outcomes) == 0 {
		for _, e := range run.Diagnostics.Errors {
			_, _ = fmt.Fprintf(r.out, "error: %s\n", e.String())
		}

		return nil
	}

	t := r.table()
	t.AppendHeader(table.Row{"#", "Step", "Status", "Outcome"})

	for _, o := range run.Outcomes {
		t.AppendRow(table.Row{o.Index, o.Step.Name, status(o), outcomeText(o)})
	}

	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d steps, %d failed)\n", len(run.Outcomes), run.Failed())

	return nil
}

// Source renders statically analyzed types.
func (r *Renderer) Source(types []*source.TypeInfo) error {
	if r.JSON() {
		views := make([]SourceTypeView, 0, len(types))
		for _, ti := range types {
			views = append(views, sourceTypeView(ti))
		}

		return r.encode(views)
	}

	for i, ti := range types {
		if i > 0 {
			_, _ = fmt.Fprintln(r.out)
		}

		_, _ = fmt.Fprintf(r.out, "%s (%s)%s\n", ti.ID, ti.Kind, flags(ti))

		if ti.Doc != "" {
			_, _ = fmt.Fprintf(r.out, "  %s\n", firstLine(ti.Doc))
		}

		if len(ti.Fields) == 0 && len(ti.Methods) == 0 && len(ti.Constructors) == 0 {
			continue
		}

		t := r.table()
		t.AppendHeader(table.Row{"Kind", "Signature"})

		for _, f := range ti.Fields {
			t.AppendRow(table.Row{"field", f.Name + " " + f.Type})
		}

		for _, m := range ti.Methods {
			t.AppendRow(table.Row{"method", MethodSignature(m)})
		}

		for _, c := range ti.Constructors {
			t.AppendRow(table.Row{"constructor", FuncSignature(c, ti.ID.Name)})
		}

		t.Render()
	}

	return nil
}

func (r *Renderer) table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	return t
}

func (r *Renderer) encode(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func status(o script.Outcome) string {
	switch {
	case !o.Passed():
		return "FAIL"
	case o.Step.Reset:
		return "reset"
	default:
		return "ok"
	}
}

func outcomeText(o script.Outcome) string {
	if !o.Passed() {
		return o.Err.Message()
	}

	if o.Step.Reset {
		return ""
	}

	return strings.ReplaceAll(o.Report.String(), "\n", "; ")
}

func flags(ti *source.TypeInfo) string {
	var parts []string
	if ti.Marker {
		parts = append(parts, "marker")
	}

	if ti.Implements {
		parts = append(parts, "implements marker")
	}

	if ti.NeedsInit {
		parts = append(parts, "zero value invalid")
	}

	if len(parts) == 0 {
		return ""
	}

	return " [" + strings.Join(parts, ", ") + "]"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// MethodSignature renders m like a Go declaration without the receiver.
func MethodSignature(m source.MethodInfo) string {
	results := m.Results
	if m.ReturnsError {
		results = append(results[:len(results):len(results)], "error")
	}

	return m.Name + "(" + params(m.Params) + ")" + resultList(results)
}

// FuncSignature renders a constructor of the type named typeName.
func FuncSignature(f source.FuncInfo, typeName string) string {
	res := typeName
	if f.ReturnsPtr {
		res = "*" + res
	}

	results := []string{res}
	if f.ReturnsErr {
		results = append(results, "error")
	}

	return f.Name + "(" + params(f.Params) + ")" + resultList(results)
}

func params(ps []source.ParamInfo) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			parts = append(parts, p.Type)
			continue
		}

		parts = append(parts, p.Name+" "+p.Type)
	}

	return strings.Join(parts, ", ")
}

func resultList(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0]
	default:
		return " (" + strings.Join(results, ", ") + ")"
	}
}
