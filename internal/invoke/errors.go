package invoke

import "fmt"

//go:generate go tool stringer -type=InvocationErrorKind -linecomment -output=invocationerror_string.go

// InvocationErrorKind classifies invocation failures.
type InvocationErrorKind int

const (
	TargetThrew   InvocationErrorKind = iota + 1 // InvocationError.TargetThrew
	ArityMismatch                                // InvocationError.ArityMismatch
)

// InvocationError is returned when the invoked member fails.
type InvocationError struct {
	Kind InvocationErrorKind
	// Member is "Type.Member".
	Member string
	// Panicked is set when Err was recovered from a panic.
	Panicked bool
	Err      error

	// Want and Got are the expected and given argument counts.
	Want, Got int
}

func (e *InvocationError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func (e *InvocationError) Stage() string {
	return "invoke"
}

func (e *InvocationError) Code() string {
	return e.Kind.String()
}

func (e *InvocationError) Message() string {
	switch {
	case e.Kind == ArityMismatch:
		return fmt.Sprintf("%s takes %d arguments, got %d", e.Member, e.Want, e.Got)
	case e.Panicked:
		return fmt.Sprintf("%s panicked: %v", e.Member, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Member, e.Err)
	}
}
