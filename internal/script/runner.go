package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"typeprobe/internal/diagnostic"
	"typeprobe/internal/engine"
)

// Outcome is the result of one step.
type Outcome struct {
	Index  int
	Step   Step
	Report engine.Report
	// Err is set when the step failed its expectation.
	Err *ScriptError
}

// Passed reports whether the step met its expectation.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// Run is the result of a whole script.
type Run struct {
	Outcomes    []Outcome
	Diagnostics diagnostic.Diagnostics
}

// Failed counts the failed steps.
func (r *Run) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed() {
			n++
		}
	}

	return n
}

// OK reports whether the script loaded and every step passed.
func (r *Run) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Runner executes scripts against a session.
type Runner struct {
	session  *engine.Session
	log      *slog.Logger
	failFast bool
}

// RunnerOption configures a Runner.
type RunnerOption func(r *Runner)

// WithFailFast stops the run at the first failed step.
func WithFailFast() RunnerOption {
	return func(r *Runner) {
		r.failFast = true
	}
}

// WithLogger sets the runner logger.
func WithLogger(log *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// NewRunner creates a Runner using session for every step.
func NewRunner(session *engine.Session, opts ...RunnerOption) *Runner {
	r := &Runner{session: session, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run validates sc, loads its modules and executes its steps in order. The
// returned error summarizes every error diagnostic of the run.
func (r *Runner) Run(ctx context.Context, sc *Script) (*Run, error) {
	run := &Run{}

	run.Diagnostics.Merge(*Validate(sc))
	if run.Diagnostics.HasErrors() {
		return run, run.Diagnostics.Error()
	}

	if _, err := r.session.Load(ctx, sc.Modules...); err != nil {
		run.Diagnostics.AddError(err)
		return run, run.Diagnostics.Error()
	}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			run.Diagnostics.AddError(err)
			break
		}

		o := r.step(i+1, st)
		run.Outcomes = append(run.Outcomes, o)

		if o.Passed() {
			continue
		}

		run.Diagnostics.AddError(o.Err)

		if r.failFast {
			break
		}
	}

	r.log.Info("script finished", slog.Int("steps", len(run.Outcomes)), slog.Int("failed", run.Failed()))

	return run, run.Diagnostics.Error()
}

func (r *Runner) step(pos int, st Step) Outcome {
	o := Outcome{Index: pos, Step: st}

	if st.Reset {
		r.session.Reset()
		return o
	}

	o.Report = r.session.InvokeByName(st.Type, st.Member, st.RawParams())
	r.log.Debug("step done", slog.Int("step", pos), slog.String("name", st.Name), slog.Bool("ok", o.Report.OK()))

	if msg := check(st.Expect, o.Report); msg != "" {
		o.Err = &ScriptError{Kind: Mismatch, Step: pos, Msg: fmt.Sprintf("%s: %s", st.Name, msg)}
	}

	return o
}

// check returns why report does not meet want, or "".
func check(want *Expect, report engine.Report) string {
	if want == nil || want.Error == "" && want.Result == nil {
		if !report.OK() {
			return "unexpected failure: " + report.Diagnostic.String()
		}
	}

	if want == nil {
		return ""
	}

	if want.Error != "" {
		if report.OK() {
			return fmt.Sprintf("expected %s, got result %q", want.Error, report.Result.String())
		}

		if report.Diagnostic.Code != want.Error {
			return fmt.Sprintf("expected %s, got %s", want.Error, report.Diagnostic.String())
		}

		return ""
	}

	if want.Result != nil {
		if !report.OK() {
			return fmt.Sprintf("expected result %q, got %s", *want.Result, report.Diagnostic.String())
		}

		if got := report.Result.String(); got != *want.Result {
			return fmt.Sprintf("expected result %q, got %q", *want.Result, got)
		}
	}

	if want.Instance != "" && !strings.Contains(report.Instance, want.Instance) {
		return fmt.Sprintf("expected instance containing %q, got %q", want.Instance, report.Instance)
	}

	return ""
}

// Record returns a copy of sc whose steps expect what run observed, so a
// script can be turned into a regression check.
func Record(sc *Script, run *Run) *Script {
	out := *sc
	out.Steps = make([]Step, len(sc.Steps))
	copy(out.Steps, sc.Steps)

	for _, o := range run.Outcomes {
		st := &out.Steps[o.Index-1]
		if st.Reset {
			continue
		}

		if o.Report.OK() {
			text := o.Report.Result.String()
			st.Expect = &Expect{Result: &text}
		} else {
			st.Expect = &Expect{Error: o.Report.Diagnostic.Code}
		}
	}

	return &out
}
