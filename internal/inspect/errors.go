package inspect

//go:generate go tool stringer -type=InspectionErrorKind -linecomment -output=inspecterror_string.go

// InspectionErrorKind classifies inspection failures.
type InspectionErrorKind int

const (
	UnknownType InspectionErrorKind = iota + 1 // InspectionError.UnknownType
)

// InspectionError is returned for type descriptors the catalog did not
// produce.
type InspectionError struct {
	Kind InspectionErrorKind
	Type string
}

func (e *InspectionError) Error() string {
	return e.Code() + ": " + e.Message()
}

func (e *InspectionError) Stage() string {
	return "inspect"
}

func (e *InspectionError) Code() string {
	return e.Kind.String()
}

func (e *InspectionError) Message() string {
	if e.Type == "" {
		return "empty type descriptor"
	}

	return "type " + e.Type + " was not discovered by this session"
}
