package source

import (
	"reflect"
	"strings"

	"typeprobe/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "typeprobe/fsmodel"
	Name    string // e.g., "Folder"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a declared type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindStruct             // struct type
	TypeKindInterface          // interface type, never instantiated
	TypeKindBasic              // named basic type, e.g. type Level int
	TypeKindOther              // named slice, map, func, ...
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindBasic:
		return "basic"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes one exported type.
type TypeInfo struct {
	ID           TypeID
	Kind         TypeKind
	Doc          string       // Doc comment without markers
	Fields       []FieldInfo  // Visible exported fields, structs only
	Methods      []MethodInfo // Exported methods of *T, sorted by name
	Constructors []FuncInfo   // Package functions returning T or *T
	Implements   bool         // Whether *T implements the marker interface
	Marker       bool         // Whether this is the marker interface itself
	NeedsInit    bool         // Whether an unexported map or chan field makes the zero value unusable
}

// Abstract reports whether the type cannot have instances.
func (t *TypeInfo) Abstract() bool {
	return t.Kind == TypeKindInterface
}

// Method returns the method with the given name.
func (t *TypeInfo) Method(name string) (MethodInfo, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}

	return MethodInfo{}, false
}

// FieldInfo describes a visible struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Type     string            // Type as written relative to the package
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    []int             // Index sequence, as for reflect.Value.FieldByIndex
}

// Promoted reports whether the field comes from an embedded struct.
func (f *FieldInfo) Promoted() bool {
	return len(f.Index) > 1
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return f.Name
}

// ParamInfo is one parameter of a function or method.
type ParamInfo struct {
	Name string // Declared name, empty when unnamed
	Type string
}

// MethodInfo describes an exported method.
type MethodInfo struct {
	Name         string
	Params       []ParamInfo
	Results      []string // Result types without the trailing error
	ReturnsError bool
	PointerRecv  bool // Declared on *T rather than T
	Promoted     bool // Declared on an embedded type
	Doc          string
}

// ParamNames returns the declared parameter names, "" for unnamed ones.
func (m MethodInfo) ParamNames() []string {
	names := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		names = append(names, p.Name)
	}

	return names
}

// Named reports whether at least one parameter has a name.
func (m MethodInfo) Named() bool {
	for _, p := range m.Params {
		if p.Name != "" && p.Name != "_" {
			return true
		}
	}

	return false
}

// FuncInfo describes a package level constructor function.
type FuncInfo struct {
	Name       string
	Params     []ParamInfo
	ReturnsPtr bool
	ReturnsErr bool
	Doc        string
}

// Primary reports whether the first parameter is a string, the name a
// domain argument is built from.
func (f FuncInfo) Primary() bool {
	return len(f.Params) > 0 && f.Params[0].Type == "string"
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all exported named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Ordered returns the types of package pkgPath in declaration order.
func (g *TypeGraph) Ordered(pkgPath string) []*TypeInfo {
	pkg := g.Packages[pkgPath]
	if pkg == nil {
		return nil
	}

	out := make([]*TypeInfo, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		out = append(out, g.Types[id])
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path   string   // Import path
	Name   string   // Package name
	Dir    string   // Directory of the first source file
	Types  []TypeID // Exported named types in declaration order
	Marker *TypeID  // Marker interface, when one was requested and found
}
