package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"
	"strconv"
	"strings"
	"text/template"

	"typeprobe/internal/source"
)

// ModuleImport is the import path of the module contract package.
const ModuleImport = "typeprobe/module"

// DefaultNamePrefix prefixes the type name to form the designated name
// argument of constructors taking a leading string.
const DefaultNamePrefix = "Test"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// ModuleName is the registered module name. Defaults to the package
	// name, or the last import path element for package main.
	ModuleName string
	// FuncName is the name of the generated manifest function.
	FuncName string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir receives a sidecar with the unformatted code on failure.
	OutputDir string
	// Register emits an init function registering the linked module.
	Register bool
	// Plugin emits the Manifest symbol a plugin build exposes.
	Plugin bool
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FuncName:         "TypeprobeManifest",
		Filename:         "zz_typeprobe_manifest.go",
		GenerateComments: true,
	}
}

// Generator generates manifest files from a type graph.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "zz_typeprobe_manifest.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

type templateData struct {
	PackageName  string
	ModuleName   string
	ModuleImport string
	FuncName     string
	Marker       string
	Types        []typeData
	Register     bool
	Plugin       bool
	Comments     bool
}

type typeData struct {
	Name    string
	Options []string
}

// Generate generates the manifest file of package pkgPath.
func (g *Generator) Generate(graph *source.TypeGraph, pkgPath string) (*GeneratedFile, error) {
	pkg := graph.Packages[pkgPath]
	if pkg == nil {
		return nil, fmt.Errorf("package %s was not analyzed", pkgPath)
	}

	if g.config.Plugin && pkg.Name != "main" {
		return nil, fmt.Errorf("package %s: plugins must be package main, not %s", pkgPath, pkg.Name)
	}

	if g.config.FuncName == "" {
		return nil, errors.New("manifest function name cannot be empty")
	}

	data := g.buildTemplateData(graph, pkg)
	if len(data.Types) == 0 {
		return nil, fmt.Errorf("package %s has no types to export", pkgPath)
	}

	filename := g.config.Filename
	if filename == "" {
		filename = DefaultGeneratorConfig().Filename
	}

	var buf bytes.Buffer
	if err := manifestTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: the sidecar only helps debugging.
		_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())

		return &GeneratedFile{Filename: filename, Content: buf.Bytes()}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}

func (g *Generator) buildTemplateData(graph *source.TypeGraph, pkg *source.PackageInfo) templateData {
	data := templateData{
		PackageName:  pkg.Name,
		ModuleName:   g.config.ModuleName,
		ModuleImport: ModuleImport,
		FuncName:     g.config.FuncName,
		Register:     g.config.Register,
		Plugin:       g.config.Plugin,
		Comments:     g.config.GenerateComments,
	}

	if data.ModuleName == "" {
		data.ModuleName = pkg.Name
		if pkg.Name == "main" {
			data.ModuleName = path.Base(pkg.Path)
		}
	}

	if pkg.Marker != nil {
		data.Marker = pkg.Marker.Name
	}

	for _, ti := range graph.Ordered(pkg.Path) {
		if !exported(ti, pkg.Marker != nil) {
			continue
		}

		data.Types = append(data.Types, typeData{Name: ti.ID.Name, Options: typeOptions(ti)})
	}

	return data
}

// exported reports whether ti belongs in the manifest: the marker and its
// implementations when a marker is set, every concrete type otherwise.
func exported(ti *source.TypeInfo, marked bool) bool {
	if marked {
		return ti.Marker || ti.Implements
	}

	return !ti.Abstract()
}

func typeOptions(ti *source.TypeInfo) []string {
	if ti.Abstract() {
		return nil
	}

	var opts []string

	if ctor, ok := constructor(ti); ok {
		call := "module.Constructor(" + ctor.Name
		if ctor.Primary() {
			call += ", " + strconv.Quote(DefaultNamePrefix+ti.ID.Name)
		}

		opts = append(opts, call+")")
	}

	if ti.NeedsInit {
		opts = append(opts, "module.ZeroInvalid()")
	}

	for _, m := range ti.Methods {
		if !m.Named() {
			continue
		}

		args := []string{strconv.Quote(m.Name)}
		for _, name := range m.ParamNames() {
			if name == "_" {
				name = ""
			}

			args = append(args, strconv.Quote(name))
		}

		opts = append(opts, "module.ParamNames("+strings.Join(args, ", ")+")")
	}

	return opts
}

// constructor picks New<Type> when present, the first candidate otherwise.
func constructor(ti *source.TypeInfo) (source.FuncInfo, bool) {
	if len(ti.Constructors) == 0 {
		return source.FuncInfo{}, false
	}

	for _, c := range ti.Constructors {
		if c.Name == "New"+ti.ID.Name {
			return c, true
		}
	}

	return ti.Constructors[0], true
}

var manifestTemplate = template.Must(template.New("manifest").Parse(`// Code generated by typeprobe gen. DO NOT EDIT.

package {{.PackageName}}

import "{{.ModuleImport}}"

{{if .Comments}}// {{.FuncName}} describes the types of {{.PackageName}} for typeprobe.
{{end}}func {{.FuncName}}() *module.Manifest {
	return module.New({{printf "%q" .ModuleName}},
{{if .Marker}}		module.Marker[{{.Marker}}](),
{{end}}{{range .Types}}{{if .Options}}		module.Type[{{.Name}}](
{{range .Options}}			{{.}},
{{end}}		),
{{else}}		module.Type[{{.Name}}](),
{{end}}{{end}}	)
}
{{if .Register}}
func init() {
	module.Register({{.FuncName}}())
}
{{end}}{{if .Plugin}}
{{if .Comments}}// Manifest is the symbol typeprobe looks up in the plugin.
{{end}}var Manifest = {{.FuncName}}()
{{end}}`))
