package module

import (
	"slices"
	"sync"
)

var (
	linkedMu sync.RWMutex
	linked   = make(map[string]*Manifest)
)

// Register makes a module available by name to every catalog in the process.
// It is meant to be called from an init function of the module package.
// If Register is called twice with the same name, with a nil manifest or
// with a manifest whose options were invalid, it panics.
func Register(m *Manifest) {
	if m == nil {
		panic("module: Register manifest is nil")
	}

	if err := m.Err(); err != nil {
		panic("module: Register invalid manifest: " + err.Error())
	}

	linkedMu.Lock()
	defer linkedMu.Unlock()

	if _, dup := linked[m.name]; dup {
		panic("module: Register called twice for module " + m.name)
	}

	linked[m.name] = m
}

// Lookup returns a registered module by name.
func Lookup(name string) (*Manifest, bool) {
	linkedMu.RLock()
	defer linkedMu.RUnlock()

	m, ok := linked[name]

	return m, ok
}

// Names returns the sorted names of registered modules.
func Names() []string {
	linkedMu.RLock()
	defer linkedMu.RUnlock()

	names := make([]string, 0, len(linked))
	for name := range linked {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
