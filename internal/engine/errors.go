package engine

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=LookupErrorKind -linecomment -output=lookuperror_string.go

// LookupErrorKind classifies name resolution failures.
type LookupErrorKind int

const (
	UnknownType   LookupErrorKind = iota + 1 // LookupError.UnknownType
	UnknownMember                            // LookupError.UnknownMember
)

// LookupError is returned when a type or member name does not resolve.
type LookupError struct {
	Kind LookupErrorKind
	Name string
	// Scope is the type searched for a member.
	Scope string
	Hints []string
}

func (e *LookupError) Error() string {
	msg := e.Code() + ": " + e.Message()
	if len(e.Hints) > 0 {
		msg += " (did you mean " + strings.Join(e.Hints, ", ") + "?)"
	}

	return msg
}

func (e *LookupError) Stage() string {
	return "lookup"
}

func (e *LookupError) Code() string {
	return e.Kind.String()
}

func (e *LookupError) Message() string {
	if e.Kind == UnknownMember {
		return fmt.Sprintf("type %s has no member %q", e.Scope, e.Name)
	}

	return fmt.Sprintf("no discovered type %q", e.Name)
}

// Suggestions returns the closest known names.
func (e *LookupError) Suggestions() []string {
	return e.Hints
}
