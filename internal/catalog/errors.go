package catalog

import "fmt"

//go:generate go tool stringer -type=LoadErrorKind -linecomment -output=loaderror_string.go

// LoadErrorKind classifies load failures.
type LoadErrorKind int

const (
	NotFound  LoadErrorKind = iota + 1 // LoadError.NotFound
	Malformed                          // LoadError.Malformed
)

// LoadError is returned when a path does not resolve to a loadable module.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Stage() string {
	return "load"
}

func (e *LoadError) Code() string {
	return e.Kind.String()
}

func (e *LoadError) Message() string {
	if e.Err == nil {
		return e.Path
	}

	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}
