package coerce

import "fmt"

//go:generate go tool stringer -type=CoercionErrorKind -linecomment -output=coercionerror_string.go

// CoercionErrorKind classifies coercion failures.
type CoercionErrorKind int

const (
	BadFormat   CoercionErrorKind = iota + 1 // CoercionError.BadFormat
	Unsupported                              // CoercionError.Unsupported
)

// CoercionError is returned when a token cannot become a value of the
// target type.
type CoercionError struct {
	Kind  CoercionErrorKind
	Token string
	// Target is the target type as written in Go, e.g. "int" or "*fsmodel.Folder".
	Target string
	// Param is the 1-based parameter position, 0 when unknown.
	Param int
	Err   error
}

// At returns a copy of e positioned at parameter pos (1-based).
func (e *CoercionError) At(pos int) *CoercionError {
	c := *e
	c.Param = pos

	return &c
}

func (e *CoercionError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

func (e *CoercionError) Stage() string {
	return "coerce"
}

func (e *CoercionError) Code() string {
	return e.Kind.String()
}

func (e *CoercionError) Message() string {
	subject := fmt.Sprintf("%q as %s", e.Token, e.Target)
	if e.Param > 0 {
		subject = fmt.Sprintf("parameter %d (%s)", e.Param, e.Target)
	}

	if e.Kind == Unsupported {
		return subject + ": no conversion from text to " + e.Target
	}

	return fmt.Sprintf("%s: %v", subject, e.Err)
}
