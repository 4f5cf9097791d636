package script

import "fmt"

//go:generate go tool stringer -type=ScriptErrorKind -linecomment -output=scripterror_string.go

// ScriptErrorKind classifies script failures.
type ScriptErrorKind int

const (
	Invalid  ScriptErrorKind = iota + 1 // ScriptError.Invalid
	Mismatch                            // ScriptError.Mismatch
)

// ScriptError reports an invalid script or a step whose outcome differs
// from its expectation.
type ScriptError struct {
	Kind ScriptErrorKind
	// Step is the 1-based step number, 0 for the script itself.
	Step int
	Msg  string
}

func (e *ScriptError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *ScriptError) Stage() string {
	return "script"
}

func (e *ScriptError) Code() string {
	return e.Kind.String()
}

func (e *ScriptError) Message() string {
	if e.Step == 0 {
		return e.Msg
	}

	return fmt.Sprintf("step %d: %s", e.Step, e.Msg)
}
