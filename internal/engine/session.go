// Package engine ties the stages together into a session: load modules,
// list types and members, invoke a member with textual parameters and
// report the outcome as text.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"typeprobe/internal/catalog"
	"typeprobe/internal/coerce"
	"typeprobe/internal/common"
	"typeprobe/internal/inspect"
	"typeprobe/internal/instance"
	"typeprobe/internal/invoke"
	"typeprobe/internal/match"
	"typeprobe/module"
)

// MaxSuggestions bounds the "did you mean" list of lookup errors.
const MaxSuggestions = 3

// ParamSeparator separates the tokens of a raw parameter string.
const ParamSeparator = ","

// Session owns the state of one inspection session.
type Session struct {
	ID string

	catalog   *catalog.Catalog
	inspector *inspect.Inspector
	registry  *instance.Registry
	coercer   *coerce.Coercer
	invoker   *invoke.Invoker

	log    *slog.Logger
	opener catalog.Opener
	marker string
}

// Option configures a Session.
type Option func(s *Session)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithPluginOpener replaces plugin.Open.
func WithPluginOpener(open catalog.Opener) Option {
	return func(s *Session) {
		s.opener = open
	}
}

// WithMarker overrides the marker interface of the loaded modules by name.
func WithMarker(name string) Option {
	return func(s *Session) {
		s.marker = strings.TrimSpace(name)
	}
}

// NewSession creates a session with nothing loaded.
func NewSession(opts ...Option) *Session {
	s := &Session{
		ID:  uuid.NewString(),
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(slog.String("session", s.ID))

	catOpts := []catalog.Option{catalog.WithLogger(s.log)}
	if s.opener != nil {
		catOpts = append(catOpts, catalog.WithOpener(s.opener))
	}

	s.catalog = catalog.New(catOpts...)
	s.inspector = inspect.New(s.catalog, s.log)
	s.registry = instance.New(s.log)
	s.coercer = coerce.New(coerce.WithLogger(s.log), coerce.WithDomains(s.domainStrategy))
	s.invoker = invoke.New(s.log)

	return s
}

// Load loads the given modules.
func (s *Session) Load(ctx context.Context, paths ...string) ([]*catalog.Handle, error) {
	handles, err := s.catalog.LoadAll(ctx, paths...)
	if err != nil {
		return nil, err
	}

	for _, h := range handles {
		s.log.Info("module loaded", slog.String("module", h.Name()), slog.String("path", h.Path))
	}

	return handles, nil
}

// Modules returns the loaded modules in load order.
func (s *Session) Modules() []*catalog.Handle {
	return s.catalog.Handles()
}

// Types returns the discovered types of every loaded module.
func (s *Session) Types() ([]catalog.TypeDescriptor, error) {
	var (
		types  []catalog.TypeDescriptor
		marked bool
	)

	for _, h := range s.catalog.Handles() {
		pred := catalog.DefaultPredicate(h)

		if s.marker != "" {
			if marker, err := catalog.MarkerByName(h, s.marker); err == nil {
				pred = catalog.All(catalog.Implements(marker), catalog.Concrete())
				marked = true
			}
		}

		types = append(types, s.catalog.Discover(h, pred)...)
	}

	if s.marker != "" && !marked && len(s.catalog.Handles()) > 0 {
		return nil, fmt.Errorf("no loaded module exports the marker interface %q", s.marker)
	}

	return types, nil
}

// Members returns the members of td.
func (s *Session) Members(td catalog.TypeDescriptor) ([]inspect.Member, error) {
	return s.inspector.Members(td)
}

// ResolveType finds a discovered type by fully qualified name, by
// "package.Name" or by case-insensitive short name.
func (s *Session) ResolveType(name string) (catalog.TypeDescriptor, error) {
	types, err := s.Types()
	if err != nil {
		return catalog.TypeDescriptor{}, err
	}

	name = strings.TrimSpace(name)

	for _, td := range types {
		if td.Name == name {
			return td, nil
		}
	}

	for _, td := range types {
		alias := common.ShortQualified(td.Type.PkgPath(), td.ShortName())
		if strings.EqualFold(td.ShortName(), name) || strings.EqualFold(alias, name) {
			return td, nil
		}
	}

	names := make([]string, 0, len(types))
	for _, td := range types {
		names = append(names, td.ShortName())
	}

	return catalog.TypeDescriptor{}, &LookupError{
		Kind:  UnknownType,
		Name:  name,
		Hints: match.Suggest(name, names, MaxSuggestions),
	}
}

// ResolveMember finds a member of td by exact, then case-insensitive name.
func (s *Session) ResolveMember(td catalog.TypeDescriptor, name string) (inspect.Member, error) {
	members, err := s.inspector.Members(td)
	if err != nil {
		return inspect.Member{}, err
	}

	name = strings.TrimSpace(name)

	for _, m := range members {
		if m.Name == name {
			return m, nil
		}
	}

	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}

	return inspect.Member{}, &LookupError{
		Kind:  UnknownMember,
		Name:  name,
		Scope: td.ShortName(),
		Hints: match.Suggest(name, names, MaxSuggestions),
	}
}

// Select returns a note about the existing instance of td, or "" when there
// is none yet.
func (s *Session) Select(td catalog.TypeDescriptor) string {
	v, ok := s.registry.Lookup(td)
	if !ok {
		return ""
	}

	return "using existing instance: " + invoke.Format(v)
}

// Instance returns the instance of td, constructing it if needed.
func (s *Session) Instance(td catalog.TypeDescriptor) (reflect.Value, error) {
	return s.registry.GetOrCreate(td)
}

// Invoke obtains the instance of td, coerces the comma separated rawParams
// to the parameters of m and invokes m. A property ignores its parameters.
// Missing parameters take their default; extra ones are ignored.
func (s *Session) Invoke(td catalog.TypeDescriptor, m inspect.Member, rawParams string) Report {
	inst, err := s.registry.GetOrCreate(td)
	if err != nil {
		return failed(td.Name, m.Name, err)
	}

	tokens := SplitParams(rawParams)
	report := Report{Type: td.Name, Member: m.Name}

	if extra := len(tokens) - len(m.Params); extra > 0 {
		s.log.Warn("ignoring extra parameters",
			slog.String("member", m.String()),
			slog.Int("expected", len(m.Params)),
			slog.Int("given", len(tokens)))

		report.Warnings = append(report.Warnings, fmt.Sprintf("%s takes %d parameters, ignored %d extra", m, len(m.Params), extra))
	}

	var res invoke.Result

	if m.IsProperty() {
		res, err = s.invoker.ReadProperty(inst, m)
	} else {
		var args []reflect.Value

		args, err = s.arguments(m, tokens)
		if err != nil {
			return failed(td.Name, m.Name, err)
		}

		res, err = s.invoker.InvokeMethod(inst, m, args)
	}

	if err != nil {
		report.Diagnostic = failed(td.Name, m.Name, err).Diagnostic
		return report
	}

	report.Result = res
	report.Instance = invoke.Format(inst)

	return report
}

// InvokeByName resolves typeName and member before invoking.
func (s *Session) InvokeByName(typeName, member, rawParams string) Report {
	td, err := s.ResolveType(typeName)
	if err != nil {
		return failed(typeName, member, err)
	}

	m, err := s.ResolveMember(td, member)
	if err != nil {
		return failed(td.Name, member, err)
	}

	return s.Invoke(td, m, rawParams)
}

func (s *Session) arguments(m inspect.Member, tokens []string) ([]reflect.Value, error) {
	args := make([]reflect.Value, 0, len(m.Params))

	for i, p := range m.Params {
		var v coerce.Value

		if i < len(tokens) {
			var err error

			v, err = s.coercer.Coerce(tokens[i], p.Type)
			if err != nil {
				var ce *coerce.CoercionError
				if errors.As(err, &ce) {
					return nil, ce.At(i + 1)
				}

				return nil, err
			}
		} else {
			v = s.coercer.DefaultFor(p.Type)
		}

		args = append(args, v.Reflect(p.Type))
	}

	return args, nil
}

// Reset drops every instance.
func (s *Session) Reset() {
	s.registry.Reset()
	s.log.Debug("instances cleared")
}

func (s *Session) domainStrategy(t reflect.Type) *module.Strategy {
	for _, h := range s.catalog.Handles() {
		if e, ok := h.Manifest.Export(t); ok && e.Strategy != nil {
			return e.Strategy
		}
	}

	return nil
}

// SplitParams splits a raw parameter string on commas. A blank string has
// no tokens.
func SplitParams(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	return strings.Split(raw, ParamSeparator)
}
