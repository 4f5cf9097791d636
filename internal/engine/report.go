package engine

import (
	"strings"

	"typeprobe/internal/diagnostic"
	"typeprobe/internal/invoke"
)

// Report is the outcome of one invocation as shown to the user.
type Report struct {
	Type   string
	Member string
	// Result is set on success.
	Result invoke.Result
	// Instance is the text of the instance after the call.
	Instance string
	// Diagnostic is set on failure.
	Diagnostic diagnostic.Diagnostic
	// Warnings are non fatal notes, e.g. ignored tokens.
	Warnings []string
}

// OK reports whether the invocation succeeded.
func (r Report) OK() bool {
	return r.Diagnostic.IsZero()
}

// String returns "result: ...\ninstance: ..." on success and the diagnostic
// line on failure.
func (r Report) String() string {
	if !r.OK() {
		return r.Diagnostic.String()
	}

	var b strings.Builder

	b.WriteString("result: ")
	b.WriteString(r.Result.String())

	if r.Instance != "" {
		b.WriteString("\ninstance: ")
		b.WriteString(r.Instance)
	}

	return b.String()
}

func failed(typeName, member string, err error) Report {
	return Report{Type: typeName, Member: member, Diagnostic: diagnostic.FromError(err)}
}
