package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"reflect"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"typeprobe/module"
)

// ManifestSymbol is the symbol looked up in plugin files.
const ManifestSymbol = "Manifest"

// PluginExt is the file extension of loadable plugins.
const PluginExt = ".so"

// Symbols is the part of *plugin.Plugin the catalog uses.
type Symbols interface {
	Lookup(name string) (plugin.Symbol, error)
}

// Opener opens a plugin file.
type Opener func(path string) (Symbols, error)

// OpenPlugin is the default Opener, backed by plugin.Open.
func OpenPlugin(path string) (Symbols, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Handle is a loaded module. It is never mutated after Load.
type Handle struct {
	// Path is the canonical source: the linked module name or the absolute
	// plugin path.
	Path     string
	Manifest *module.Manifest
	Linked   bool
}

// Name returns the module name declared by the manifest.
func (h *Handle) Name() string {
	return h.Manifest.Name()
}

// TypeDescriptor is one discovered type.
type TypeDescriptor struct {
	// Name is the fully qualified name, "pkgpath.Name".
	Name   string
	Type   reflect.Type
	Handle *Handle
}

// IsZero reports whether td describes nothing.
func (td TypeDescriptor) IsZero() bool {
	return td.Type == nil || td.Handle == nil
}

// ShortName returns the type name without the package path.
func (td TypeDescriptor) ShortName() string {
	if td.Type == nil {
		return ""
	}

	return td.Type.Name()
}

// Export returns the manifest entry of the type.
func (td TypeDescriptor) Export() *module.Export {
	if td.IsZero() {
		return nil
	}

	e, _ := td.Handle.Manifest.Export(td.Type)

	return e
}

func (td TypeDescriptor) String() string {
	return td.Name
}

// Catalog loads modules and keeps their handles for the session.
type Catalog struct {
	mu      sync.Mutex
	handles map[string]*Handle
	order   []*Handle

	open Opener
	log  *slog.Logger
}

// Option configures a Catalog.
type Option func(c *Catalog)

// WithOpener replaces plugin.Open, e.g. for tests.
func WithOpener(open Opener) Option {
	return func(c *Catalog) {
		c.open = open
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// New creates an empty Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		handles: make(map[string]*Handle),
		open:    OpenPlugin,
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load resolves path to a module. Resolution order: a linked module name,
// then a plugin file. Loading the same module twice returns the same handle.
func (c *Catalog) Load(path string) (*Handle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &LoadError{Kind: NotFound, Path: path, Err: errors.New("empty module path")}
	}

	if m, ok := module.Lookup(path); ok {
		return c.store(&Handle{Path: path, Manifest: m, Linked: true}), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Kind: NotFound, Path: path, Err: err}
	}

	if h := c.cached(abs); h != nil {
		return h, nil
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &LoadError{Kind: NotFound, Path: path, Err: errors.New("no linked module or plugin file with this name")}
	case err != nil:
		return nil, &LoadError{Kind: NotFound, Path: path, Err: err}
	case info.IsDir() || !strings.HasSuffix(abs, PluginExt):
		return nil, &LoadError{Kind: Malformed, Path: path, Err: fmt.Errorf("not a plugin, expected a %s file", PluginExt)}
	}

	m, err := c.openManifest(abs)
	if err != nil {
		return nil, &LoadError{Kind: Malformed, Path: path, Err: err}
	}

	c.log.Debug("plugin loaded", slog.String("path", abs), slog.String("module", m.Name()))

	return c.store(&Handle{Path: abs, Manifest: m}), nil
}

func (c *Catalog) openManifest(path string) (*module.Manifest, error) {
	syms, err := c.open(path)
	if err != nil {
		return nil, err
	}

	sym, err := syms.Lookup(ManifestSymbol)
	if err != nil {
		return nil, err
	}

	var m *module.Manifest
	switch v := sym.(type) {
	case *module.Manifest:
		m = v
	case **module.Manifest:
		if v != nil {
			m = *v
		}
	case func() *module.Manifest:
		m = v()
	default:
		return nil, fmt.Errorf("symbol %s has type %T, want *module.Manifest", ManifestSymbol, sym)
	}

	if m == nil {
		return nil, fmt.Errorf("symbol %s is nil", ManifestSymbol)
	}

	if err := m.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func (c *Catalog) cached(key string) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.handles[key]
}

// store keeps the first handle stored under h.Path.
func (c *Catalog) store(h *Handle) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.handles[h.Path]; ok {
		return existing
	}

	c.handles[h.Path] = h
	c.order = append(c.order, h)

	return h
}

// LoadAll loads paths concurrently. The handles are returned in argument
// order; the first failure cancels the rest and is returned.
func (c *Catalog) LoadAll(ctx context.Context, paths ...string) ([]*Handle, error) {
	handles := make([]*Handle, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			h, err := c.Load(path)
			if err != nil {
				return err
			}

			handles[i] = h

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return handles, nil
}

// Handles returns the loaded handles in load order.
func (c *Catalog) Handles() []*Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Handle, len(c.order))
	copy(out, c.order)

	return out
}

// Discover returns every concrete exported type of h that satisfies pred, in
// manifest declaration order. A nil pred accepts everything.
func (c *Catalog) Discover(h *Handle, pred Predicate) []TypeDescriptor {
	found := []TypeDescriptor{}
	if h == nil {
		return found
	}

	for _, e := range h.Manifest.Exports() {
		if e.Abstract() || (pred != nil && !pred(e.Type)) {
			continue
		}

		c.log.Debug("found type", slog.String("module", h.Name()), slog.String("type", e.Name()))

		found = append(found, TypeDescriptor{Name: e.Name(), Type: e.Type, Handle: h})
	}

	return found
}

// Owns reports whether td was discovered from a handle of this catalog.
func (c *Catalog) Owns(td TypeDescriptor) bool {
	if td.IsZero() {
		return false
	}

	c.mu.Lock()
	h, ok := c.handles[td.Handle.Path]
	c.mu.Unlock()

	if !ok || h != td.Handle {
		return false
	}

	_, ok = h.Manifest.Export(td.Type)

	return ok
}
