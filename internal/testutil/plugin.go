package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"sync"
	"testing"

	"typeprobe/internal/catalog"
)

// Plugins is a fake plugin loader: files are created on disk so that path
// resolution behaves as for real plugins, but symbols come from memory.
type Plugins struct {
	mu    sync.Mutex
	dir   string
	files map[string]map[string]plugin.Symbol
	fail  map[string]error
	opens int
}

// NewPlugins creates a fake loader rooted in a temporary directory.
func NewPlugins(t testing.TB) *Plugins {
	t.Helper()

	return &Plugins{
		dir:   t.TempDir(),
		files: make(map[string]map[string]plugin.Symbol),
		fail:  make(map[string]error),
	}
}

// Add creates name in the plugin directory exporting syms and returns its
// path.
func (p *Plugins) Add(t testing.TB, name string, syms map[string]plugin.Symbol) string {
	t.Helper()

	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, []byte("fake plugin"), 0o600); err != nil {
		t.Fatalf("write fake plugin: %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.files[path] = syms

	return path
}

// Broken creates name so that opening it fails with err.
func (p *Plugins) Broken(t testing.TB, name string, err error) string {
	t.Helper()

	path := p.Add(t, name, nil)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.fail[path] = err

	return path
}

// Dir returns the plugin directory.
func (p *Plugins) Dir() string {
	return p.dir
}

// Opens returns how many times Open was called.
func (p *Plugins) Opens() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.opens
}

// Open satisfies catalog.Opener.
func (p *Plugins) Open(path string) (catalog.Symbols, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opens++

	if err := p.fail[path]; err != nil {
		return nil, err
	}

	syms, ok := p.files[path]
	if !ok {
		return nil, fmt.Errorf("plugin.Open(%q): not a fake plugin", path)
	}

	return symbols(syms), nil
}

type symbols map[string]plugin.Symbol

func (s symbols) Lookup(name string) (plugin.Symbol, error) {
	sym, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("plugin: symbol %s not found", name)
	}

	return sym, nil
}
