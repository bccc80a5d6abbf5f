package trace

import (
	"sync"
	"sync/atomic"

	"github.com/hostlink/jvmbridge"
)

// Registry stores captured traces keyed by exception identity.
type Registry interface {
	// Record inserts an entry for an identity. It is a no-op when capture
	// is disabled and never overwrites an existing entry.
	Record(id jvmbridge.ObjectID, frames []jvmbridge.Frame, cleanup func())

	// Lookup returns the captured frames for an identity. Non-destructive.
	Lookup(id jvmbridge.ObjectID) ([]jvmbridge.Frame, bool)

	// Remove deletes the entry for an identity and returns its deferred
	// cleanup action. A missing entry is a normal outcome: the exception
	// may have been raised while capture was disabled.
	Remove(id jvmbridge.ObjectID) (func(), bool)

	// Len returns the number of live entries.
	Len() int
}

type entry struct {
	frames  []jvmbridge.Frame
	cleanup func()
}

// lockedRegistry serializes all content mutations and reads with a single
// lock; the underlying map is not read-concurrent-safe.
type lockedRegistry struct {
	mu      sync.Mutex
	entries map[jvmbridge.ObjectID]entry
}

// NewRegistry creates an empty mutex-guarded registry.
func NewRegistry() Registry {
	return &lockedRegistry{entries: make(map[jvmbridge.ObjectID]entry)}
}

func (r *lockedRegistry) Record(id jvmbridge.ObjectID, frames []jvmbridge.Frame, cleanup func()) {
	if !CaptureEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		// Exactly one entry per live identity; the first capture wins.
		return
	}
	r.entries[id] = entry{frames: frames, cleanup: cleanup}
}

func (r *lockedRegistry) Lookup(id jvmbridge.ObjectID) ([]jvmbridge.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	out := make([]jvmbridge.Frame, len(e.frames))
	copy(out, e.frames)
	return out, true
}

func (r *lockedRegistry) Remove(id jvmbridge.ObjectID) (func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	return e.cleanup, true
}

func (r *lockedRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// nopRegistry records nothing. Used when trace capture is compiled out by
// configuration.
type nopRegistry struct{}

// NewNopRegistry returns a registry that records nothing and always misses.
func NewNopRegistry() Registry { return nopRegistry{} }

func (nopRegistry) Record(jvmbridge.ObjectID, []jvmbridge.Frame, func()) {}

func (nopRegistry) Lookup(jvmbridge.ObjectID) ([]jvmbridge.Frame, bool) { return nil, false }

func (nopRegistry) Remove(jvmbridge.ObjectID) (func(), bool) { return nil, false }

func (nopRegistry) Len() int { return 0 }

var (
	captureEnabled atomic.Bool

	defaultMu  sync.Mutex
	defaultReg Registry
)

func init() {
	captureEnabled.Store(true)
}

// Default returns the process-wide registry, allocating it on first use.
// It is never torn down so shutdown-time exception cleanup can still use it.
func Default() Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg == nil {
		defaultReg = NewRegistry()
	}
	return defaultReg
}

// SetDefault replaces the process-wide registry. This must happen before
// any exception is raised through the hooked entry point; entries recorded
// in the previous registry are not migrated.
func SetDefault(r Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultReg = r
}

// SetCaptureEnabled toggles trace capture process-wide.
func SetCaptureEnabled(enabled bool) {
	captureEnabled.Store(enabled)
}

// CaptureEnabled reports whether trace capture is on. Read without the
// registry lock; it only gates a best-effort diagnostic feature.
func CaptureEnabled() bool {
	return captureEnabled.Load()
}

// Record inserts an entry into the default registry.
func Record(id jvmbridge.ObjectID, frames []jvmbridge.Frame, cleanup func()) {
	Default().Record(id, frames, cleanup)
}

// Lookup reads the captured frames for an identity from the default registry.
func Lookup(id jvmbridge.ObjectID) ([]jvmbridge.Frame, bool) {
	return Default().Lookup(id)
}

// Remove deletes an entry from the default registry.
func Remove(id jvmbridge.ObjectID) (func(), bool) {
	return Default().Remove(id)
}

// Len returns the number of live entries in the default registry.
func Len() int {
	return Default().Len()
}
