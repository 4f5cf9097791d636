package render

import (
	"typeprobe/internal/catalog"
	"typeprobe/internal/diagnostic"
	"typeprobe/internal/engine"
	"typeprobe/internal/inspect"
	"typeprobe/internal/script"
	"typeprobe/internal/source"
)

// JSON shapes of the rendered values.
type (
	TypeView struct {
		Name     string `json:"name"`
		Short    string `json:"short_name"`
		Module   string `json:"module"`
		Linked   bool   `json:"linked"`
		Strategy bool   `json:"strategy"`
	}

	MembersView struct {
		Type    string       `json:"type"`
		Members []MemberView `json:"members"`
	}

	MemberView struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Signature string `json:"signature"`
	}

	ReportView struct {
		Type     string          `json:"type,omitempty"`
		Member   string          `json:"member,omitempty"`
		OK       bool            `json:"ok"`
		Result   string          `json:"result,omitempty"`
		Instance string          `json:"instance,omitempty"`
		Error    *DiagnosticView `json:"error,omitempty"`
		Warnings []string        `json:"warnings,omitempty"`
	}

	DiagnosticView struct {
		Stage       string   `json:"stage"`
		Code        string   `json:"code"`
		Message     string   `json:"message"`
		Suggestions []string `json:"suggestions,omitempty"`
	}

	RunView struct {
		OK       bool             `json:"ok"`
		Failed   int              `json:"failed"`
		Steps    []StepView       `json:"steps"`
		Errors   []DiagnosticView `json:"errors,omitempty"`
		Warnings []DiagnosticView `json:"warnings,omitempty"`
	}

	StepView struct {
		Index    int         `json:"index"`
		Name     string      `json:"name"`
		Passed   bool        `json:"passed"`
		Reset    bool        `json:"reset,omitempty"`
		Report   *ReportView `json:"report,omitempty"`
		Mismatch string      `json:"mismatch,omitempty"`
	}

	SourceTypeView struct {
		Name         string   `json:"name"`
		Kind         string   `json:"kind"`
		Doc          string   `json:"doc,omitempty"`
		Marker       bool     `json:"marker,omitempty"`
		Implements   bool     `json:"implements,omitempty"`
		NeedsInit    bool     `json:"needs_init,omitempty"`
		Fields       []string `json:"fields,omitempty"`
		Methods      []string `json:"methods,omitempty"`
		Constructors []string `json:"constructors,omitempty"`
	}
)

func typeView(td catalog.TypeDescriptor) TypeView {
	v := TypeView{Name: td.Name, Short: td.ShortName()}
	if td.Handle != nil {
		v.Module = td.Handle.Name()
		v.Linked = td.Handle.Linked
	}

	if e := td.Export(); e != nil {
		v.Strategy = e.Strategy != nil
	}

	return v
}

func memberView(m inspect.Member) MemberView {
	return MemberView{Kind: m.Kind.String(), Name: m.Name, Signature: m.Signature()}
}

func reportView(rep engine.Report) ReportView {
	v := ReportView{Type: rep.Type, Member: rep.Member, OK: rep.OK(), Warnings: rep.Warnings}
	if !v.OK {
		d := diagnosticView(rep.Diagnostic)
		v.Error = &d

		return v
	}

	v.Result = rep.Result.String()
	v.Instance = rep.Instance

	return v
}

func diagnosticView(d diagnostic.Diagnostic) DiagnosticView {
	return DiagnosticView{Stage: d.Stage, Code: d.Code, Message: d.Message, Suggestions: d.Suggestions}
}

func diagnosticViews(ds []diagnostic.Diagnostic) []DiagnosticView {
	if len(ds) == 0 {
		return nil
	}

	out := make([]DiagnosticView, 0, len(ds))
	for _, d := range ds {
		out = append(out, diagnosticView(d))
	}

	return out
}

func runView(run *script.Run) RunView {
	v := RunView{
		OK:       run.OK(),
		Failed:   run.Failed(),
		Steps:    make([]StepView, 0, len(run.Outcomes)),
		Errors:   diagnosticViews(run.Diagnostics.Errors),
		Warnings: diagnosticViews(run.Diagnostics.Warnings),
	}

	for _, o := range run.Outcomes {
		sv := StepView{Index: o.Index, Name: o.Step.Name, Passed: o.Passed(), Reset: o.Step.Reset}
		if !o.Step.Reset {
			rv := reportView(o.Report)
			sv.Report = &rv
		}

		if o.Err != nil {
			sv.Mismatch = o.Err.Message()
		}

		v.Steps = append(v.Steps, sv)
	}

	return v
}

func sourceTypeView(ti *source.TypeInfo) SourceTypeView {
	v := SourceTypeView{
		Name:       ti.ID.String(),
		Kind:       ti.Kind.String(),
		Doc:        ti.Doc,
		Marker:     ti.Marker,
		Implements: ti.Implements,
		NeedsInit:  ti.NeedsInit,
	}

	for _, f := range ti.Fields {
		v.Fields = append(v.Fields, f.Name+" "+f.Type)
	}

	for _, m := range ti.Methods {
		v.Methods = append(v.Methods, MethodSignature(m))
	}

	for _, c := range ti.Constructors {
		v.Constructors = append(v.Constructors, FuncSignature(c, ti.ID.Name))
	}

	return v
}
