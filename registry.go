package schemamgr

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	dialects   = make(map[Backend]Dialect)
)

// RegisterDialect makes a dialect available for its backend.
// Driver packages call it from init(); linking the package is what compiles
// an engine in. It panics on an unknown backend or a second registration.
func RegisterDialect(d Dialect) {
	if d == nil {
		panic("schemamgr: RegisterDialect dialect is nil")
	}
	b := d.Backend()
	if !b.Valid() {
		panic(fmt.Sprintf("schemamgr: RegisterDialect unknown backend %q", b))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := dialects[b]; dup {
		panic("schemamgr: RegisterDialect called twice for " + string(b))
	}
	dialects[b] = d
}

// LookupDialect returns the dialect registered for b, or an
// *UnsupportedBackendError when the engine is not linked in.
func LookupDialect(b Backend) (Dialect, error) {
	registryMu.RLock()
	d, ok := dialects[b]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnsupportedBackendError{Backend: b, Available: Backends()}
	}
	return d, nil
}

// Backends lists the engines linked into this build (sorted).
func Backends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Backend, 0, len(dialects))
	for b := range dialects {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// unregisterDialect is used by tests to simulate a build without an engine.
func unregisterDialect(b Backend) (restore func()) {
	registryMu.Lock()
	prev, had := dialects[b]
	delete(dialects, b)
	registryMu.Unlock()
	return func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		if had {
			dialects[b] = prev
		} else {
			delete(dialects, b)
		}
	}
}
