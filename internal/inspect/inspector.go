package inspect

import (
	"log/slog"
	"reflect"

	"typeprobe/internal/catalog"
)

var errorType = reflect.TypeFor[error]()

// Inspector enumerates the members of discovered types.
type Inspector struct {
	catalog *catalog.Catalog
	log     *slog.Logger
}

// New creates an Inspector accepting the types of c.
func New(c *catalog.Catalog, log *slog.Logger) *Inspector {
	if log == nil {
		log = slog.Default()
	}

	return &Inspector{catalog: c, log: log}
}

// Members returns the exported properties of td followed by its exported
// methods. Properties include fields promoted from embedded structs; the
// embedded fields themselves are left out. Methods come from the method
// set of *T, without methods named like a property.
func (in *Inspector) Members(td catalog.TypeDescriptor) ([]Member, error) {
	if !in.catalog.Owns(td) {
		return nil, &InspectionError{Kind: UnknownType, Type: td.Name}
	}

	props := properties(td)

	names := make(map[string]struct{}, len(props))
	for _, p := range props {
		names[p.Name] = struct{}{}
	}

	members := append(props, methods(td, names)...)
	for _, m := range members {
		in.log.Debug("found member",
			slog.String("type", td.Name),
			slog.String("kind", m.Kind.String()),
			slog.String("member", m.Signature()))
	}

	return members, nil
}

func properties(td catalog.TypeDescriptor) []Member {
	if td.Type.Kind() != reflect.Struct {
		return nil
	}

	var out []Member
	for _, f := range reflect.VisibleFields(td.Type) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		out = append(out, Member{
			Kind:      Property,
			Name:      f.Name,
			Declaring: td,
			Type:      f.Type,
			Index:     f.Index,
		})
	}

	return out
}

func methods(td catalog.TypeDescriptor, props map[string]struct{}) []Member {
	export := td.Export()
	ptr := reflect.PointerTo(td.Type)

	var out []Member
	for i := range ptr.NumMethod() {
		rm := ptr.Method(i)
		if _, ok := props[rm.Name]; ok {
			continue
		}

		ft := rm.Type
		m := Member{
			Kind:      Method,
			Name:      rm.Name,
			Declaring: td,
			Func:      rm.Func,
			Variadic:  ft.IsVariadic(),
		}

		for j := 1; j < ft.NumIn(); j++ {
			name := ""
			if export != nil {
				name = export.ParamName(rm.Name, j-1)
			}

			m.Params = append(m.Params, Param{Name: name, Type: ft.In(j)})
		}

		for j := range ft.NumOut() {
			if j == ft.NumOut()-1 && ft.Out(j) == errorType {
				m.ReturnsError = true
				break
			}

			m.Results = append(m.Results, ft.Out(j))
		}

		out = append(out, m)
	}

	return out
}
