package instance

import "fmt"

//go:generate go tool stringer -type=ConstructionErrorKind -linecomment -output=constructionerror_string.go

// ConstructionErrorKind classifies construction failures.
type ConstructionErrorKind int

const (
	NoStrategy       ConstructionErrorKind = iota + 1 // ConstructionError.NoStrategy
	ConstructorThrew                                  // ConstructionError.ConstructorThrew
)

// ConstructionError is returned when no instance can be obtained for a type.
type ConstructionError struct {
	Kind ConstructionErrorKind
	// Type is the fully qualified type name.
	Type string
	// Constructor names the strategy that failed, if any.
	Constructor string
	Err         error
}

func (e *ConstructionError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func (e *ConstructionError) Stage() string {
	return "construct"
}

func (e *ConstructionError) Code() string {
	return e.Kind.String()
}

func (e *ConstructionError) Message() string {
	switch e.Kind {
	case NoStrategy:
		return fmt.Sprintf("no way to construct %s: no constructor is registered and its zero value is not usable", e.Type)
	default:
		return fmt.Sprintf("%s failed for %s: %v", e.Constructor, e.Type, e.Err)
	}
}
