package hook

import (
	"sync"
	"sync/atomic"

	"github.com/hostlink/jvmbridge"
	"github.com/hostlink/jvmbridge/trace"
)

// RaiseFunc is the signature of the throw entry point. It never returns
// normally.
type RaiseFunc func(*Thrown)

// Info describes the entry-point slot an external code-patching facility
// must redirect when the entry point cannot be swapped in-process.
// Original points at the slot holding the unhooked entry point; a patcher
// that produces the unhooked address must store it back through this
// pointer so the wrapper can delegate to it. Replacement is the wrapper
// that must receive all calls after patching.
type Info struct {
	Original    *RaiseFunc
	Replacement RaiseFunc
}

var (
	installMu sync.Mutex
	installed bool

	// original holds the unhooked entry point once the hook is installed.
	original RaiseFunc

	// entry is the process-wide throw entry point slot.
	entry atomic.Pointer[RaiseFunc]
)

func init() {
	f := RaiseFunc(defaultRaise)
	entry.Store(&f)
}

// defaultRaise is the unhooked entry point: it hands the record to the
// native unwinding machinery.
func defaultRaise(t *Thrown) {
	panic(t)
}

// hookedRaise records a freshly captured stack trace and the caller's
// cleanup action, then delegates to the saved original entry point with
// the trampoline substituted as the record's cleanup.
func hookedRaise(t *Thrown) {
	if trace.CaptureEnabled() {
		id := t.id
		trace.Record(id, trace.Capture(2), t.cleanup)
		t.cleanup = func() {
			orig, ok := trace.Remove(id)
			if ok && orig != nil {
				orig()
			}
		}
	}

	original(t)
}

// Install replaces the throw entry point with the recording wrapper,
// saving the original. It is idempotent and safe to call from multiple
// goroutines, but must complete before the first throw it should observe.
func Install() {
	installMu.Lock()
	defer installMu.Unlock()

	if installed {
		return
	}
	original = *entry.Load()
	f := RaiseFunc(hookedRaise)
	entry.Store(&f)
	installed = true
}

// HookInfo exposes the slot being mutated and the replacement address for
// an external patcher. Callers that use Install never need this.
func HookInfo() *Info {
	return &Info{
		Original:    &original,
		Replacement: hookedRaise,
	}
}

// Throw raises err as a native exception. It does not return.
func Throw(err error) {
	ThrowWithCleanup(err, nil)
}

// ThrowWithCleanup raises err with a deferred cleanup action that runs
// exactly once when the exception record is finally destroyed. It does not
// return.
func ThrowWithCleanup(err error, cleanup func()) {
	t := newThrown(err, cleanup)
	(*entry.Load())(t)
	// The entry point never returns; this is unreachable.
	panic(t)
}

// Rethrow re-raises an exception record without re-capturing its trace.
// The registry entry recorded at the original throw stays keyed to the
// same identity.
func Rethrow(t *Thrown) {
	panic(t)
}

// Free destroys the exception record. It runs the record's cleanup exactly
// once; later calls are no-ops. The caller that finally consumes the
// exception (rather than rethrowing it) owns this call.
func Free(t *Thrown) {
	if t == nil {
		return
	}
	if !t.freed.CompareAndSwap(false, true) {
		return
	}
	if t.cleanup != nil {
		t.cleanup()
	}
}

// TraceFor returns the frames captured when the identified exception was
// raised. A miss is a normal outcome for exceptions raised while capture
// was disabled.
func TraceFor(id jvmbridge.ObjectID) ([]jvmbridge.Frame, bool) {
	return trace.Lookup(id)
}
