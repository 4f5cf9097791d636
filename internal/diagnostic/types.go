package diagnostic

import (
	"errors"
	"strings"

	"typeprobe/internal/common"
)

// Staged is implemented by the typed errors of every engine stage.
type Staged interface {
	error
	// Stage names the failing step: "load", "inspect", "construct", ...
	Stage() string
	// Code is the taxonomy name, e.g. "CoercionError.BadFormat".
	Code() string
	// Message is the error text without stage and code.
	Message() string
}

// Suggester is implemented by errors that know likely alternatives.
type Suggester interface {
	Suggestions() []string
}

// Fallback stage and code for errors that are not Staged.
const (
	EngineStage = "engine"
	GenericCode = "Error"
)

// Diagnostics holds the diagnostics of a batch run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Stage is the engine step the diagnostic relates to.
	Stage string
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Suggestions are potential alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// FromError normalizes err. The outermost Staged error in the chain decides
// stage, code and message; suggestions come from the outermost Suggester.
func FromError(err error) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}

	d := Diagnostic{
		Severity: SeverityError,
		Stage:    EngineStage,
		Code:     GenericCode,
		Message:  err.Error(),
	}

	var staged Staged
	if errors.As(err, &staged) {
		d.Stage = staged.Stage()
		d.Code = staged.Code()
		d.Message = staged.Message()
	}

	var sg Suggester
	if errors.As(err, &sg) {
		d.Suggestions = sg.Suggestions()
	}

	return d
}

// AddError adds err as an error diagnostic.
func (d *Diagnostics) AddError(err error) {
	d.Errors = append(d.Errors, FromError(err))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(stage, code, message string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Stage:    stage,
		Code:     code,
		Message:  message,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// IsZero reports whether d carries no diagnostic at all.
func (d Diagnostic) IsZero() bool {
	return d.Code == "" && d.Message == ""
}

// String returns "<stage>: <code>: <message>", followed by the suggestions
// when there are any.
func (d Diagnostic) String() string {
	if d.IsZero() {
		return ""
	}

	var b strings.Builder

	for _, part := range []string{d.Stage, d.Code} {
		if part != "" {
			b.WriteString(part)
			b.WriteString(": ")
		}
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(d.Suggestions, ", "))
		b.WriteString("?)")
	}

	return b.String()
}
