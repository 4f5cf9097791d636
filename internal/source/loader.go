package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// maxEmbedDepth bounds the walk through embedded structs.
const maxEmbedDepth = 8

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph  *TypeGraph
	marker string
	dir    string
	msets  typeutil.MethodSetCache
}

// Option configures an Analyzer.
type Option func(a *Analyzer)

// WithMarker names the interface whose implementations are flagged with
// TypeInfo.Implements.
func WithMarker(name string) Option {
	return func(a *Analyzer) {
		a.marker = name
	}
}

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{graph: NewTypeGraph()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./fsmodel", "typeprobe/fsmodel").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts the exported types of a loaded package in the
// order their declarations appear in the sources.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	qual := func(p *types.Package) string {
		if p == pkg.Types {
			return ""
		}

		return p.Name()
	}

	var marker *types.Interface

	if a.marker != "" {
		obj, ok := pkg.Types.Scope().Lookup(a.marker).(*types.TypeName)
		if !ok {
			return fmt.Errorf("marker %s is not declared", a.marker)
		}

		iface, ok := obj.Type().Underlying().(*types.Interface)
		if !ok {
			return fmt.Errorf("marker %s is not an interface", a.marker)
		}

		marker = iface
		pkgInfo.Marker = &TypeID{PkgPath: pkg.PkgPath, Name: a.marker}
	}

	docs := funcDocs(pkg)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if !ts.Name.IsExported() || ts.TypeParams != nil {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}

				info := a.analyzeType(obj, qual, docs)
				info.Doc = docText(ts.Doc)
				if info.Doc == "" && len(gen.Specs) == 1 {
					info.Doc = docText(gen.Doc)
				}

				if marker != nil {
					info.Marker = obj.Name() == a.marker
					info.Implements = !info.Marker && !info.Abstract() &&
						types.Implements(types.NewPointer(obj.Type()), marker)
				}

				a.graph.Types[info.ID] = info
				pkgInfo.Types = append(pkgInfo.Types, info.ID)
			}
		}
	}

	a.collectConstructors(pkg, qual, docs)
	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return nil
}

// analyzeType describes one declared type.
func (a *Analyzer) analyzeType(obj *types.TypeName, qual types.Qualifier, docs map[types.Object]string) *TypeInfo {
	info := &TypeInfo{
		ID: TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
	}

	switch ut := obj.Type().Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		info.NeedsInit = needsInit(ut)
		collectFields(ut, qual, nil, nil, &info.Fields)
	case *types.Interface:
		info.Kind = TypeKindInterface
	case *types.Basic:
		info.Kind = TypeKindBasic
	default:
		info.Kind = TypeKindOther
	}

	recv := obj.Type()
	if info.Kind != TypeKindInterface {
		recv = types.NewPointer(recv)
	}

	mset := a.msets.MethodSet(recv)
	for i := range mset.Len() {
		sel := mset.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		info.Methods = append(info.Methods, methodInfo(fn, sel, qual, docs))
	}

	return info
}

// collectFields appends the visible exported fields of st in the order
// reflect.VisibleFields reports them. Names declared at a shallower depth
// hide deeper ones.
func collectFields(st *types.Struct, qual types.Qualifier, index []int, hidden map[string]bool, out *[]FieldInfo) {
	if len(index) > maxEmbedDepth {
		return
	}

	level := maps.Clone(hidden)
	if level == nil {
		level = make(map[string]bool)
	}

	for i := range st.NumFields() {
		level[st.Field(i).Name()] = true
	}

	for i := range st.NumFields() {
		f := st.Field(i)
		if hidden[f.Name()] {
			continue
		}

		idx := append(slices.Clone(index), i)

		if f.Exported() {
			*out = append(*out, FieldInfo{
				Name:     f.Name(),
				Type:     types.TypeString(f.Type(), qual),
				Tag:      reflect.StructTag(st.Tag(i)),
				Embedded: f.Embedded(),
				Index:    idx,
			})
		}

		if !f.Embedded() {
			continue
		}

		if inner, ok := deref(f.Type()).Underlying().(*types.Struct); ok {
			collectFields(inner, qual, idx, level, out)
		}
	}
}

// needsInit reports whether st has an unexported map or chan field that
// only a constructor can set.
func needsInit(st *types.Struct) bool {
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Exported() {
			continue
		}

		switch f.Type().Underlying().(type) {
		case *types.Map, *types.Chan:
			return true
		}
	}

	return false
}

func methodInfo(fn *types.Func, sel *types.Selection, qual types.Qualifier, docs map[types.Object]string) MethodInfo {
	sig := fn.Type().(*types.Signature)

	m := MethodInfo{
		Name:     fn.Name(),
		Params:   params(sig, qual),
		Promoted: len(sel.Index()) > 1,
		Doc:      docs[fn],
	}

	if r := sig.Recv(); r != nil {
		_, m.PointerRecv = r.Type().(*types.Pointer)
	}

	res := sig.Results()
	for i := range res.Len() {
		t := res.At(i).Type()
		if i == res.Len()-1 && isError(t) {
			m.ReturnsError = true
			continue
		}

		m.Results = append(m.Results, types.TypeString(t, qual))
	}

	return m
}

// collectConstructors attaches every exported package function whose first
// result is T or *T, optionally followed by an error, to the TypeInfo of T.
func (a *Analyzer) collectConstructors(pkg *packages.Package, qual types.Qualifier, docs map[types.Object]string) {
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig := fn.Type().(*types.Signature)
		if sig.TypeParams() != nil || sig.Variadic() {
			continue
		}

		res := sig.Results()
		if res.Len() == 0 || res.Len() > 2 || res.Len() == 2 && !isError(res.At(1).Type()) {
			continue
		}

		out := res.At(0).Type()
		_, ptr := out.(*types.Pointer)

		named, ok := deref(out).(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}

		info := a.graph.Types[TypeID{PkgPath: pkg.PkgPath, Name: named.Obj().Name()}]
		if info == nil || info.Abstract() {
			continue
		}

		info.Constructors = append(info.Constructors, FuncInfo{
			Name:       fn.Name(),
			Params:     params(sig, qual),
			ReturnsPtr: ptr,
			ReturnsErr: res.Len() == 2,
			Doc:        docs[fn],
		})
	}
}

func params(sig *types.Signature, qual types.Qualifier) []ParamInfo {
	ps := sig.Params()
	out := make([]ParamInfo, 0, ps.Len())

	for i := range ps.Len() {
		p := ps.At(i)
		out = append(out, ParamInfo{Name: p.Name(), Type: types.TypeString(p.Type(), qual)})
	}

	return out
}

// funcDocs maps functions and methods to their doc comments.
func funcDocs(pkg *packages.Package) map[types.Object]string {
	docs := make(map[types.Object]string)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Doc == nil {
				continue
			}

			if obj := pkg.TypesInfo.Defs[fd.Name]; obj != nil {
				docs[obj] = docText(fd.Doc)
			}
		}
	}

	return docs
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}

	return strings.TrimSpace(cg.Text())
}

func deref(t types.Type) types.Type {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}

	return t
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}
