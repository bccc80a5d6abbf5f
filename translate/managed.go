package translate

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hostlink/jvmbridge"
	berrors "github.com/hostlink/jvmbridge/errors"
	"github.com/hostlink/jvmbridge/handle"
)

const exceptionMessageFailure = "Unable to get exception message."

// ManagedException is a native exception value that owns a global
// reference to a managed throwable. Its display message is computed
// lazily through the bridge and never fails outward: every stage of the
// extraction chain that throws is treated as a failed stage, ending at a
// fixed sentinel in the worst case.
type ManagedException struct {
	b   jvmbridge.Bridge
	ref *handle.Ref

	mu        sync.Mutex
	what      string
	extracted bool
}

// Wrap takes ownership of the throwable as a new global reference and
// wraps it in a ManagedException.
func Wrap(b jvmbridge.Bridge, id jvmbridge.ObjectID) (*ManagedException, error) {
	ref, err := handle.AcquireGlobal(b, id)
	if err != nil {
		return nil, berrors.Wrap(berrors.PhaseTranslate, berrors.KindInvalidHandle, err, "wrap throwable")
	}
	return &ManagedException{b: b, ref: ref}, nil
}

// ID returns the identity of the owned throwable.
func (e *ManagedException) ID() jvmbridge.ObjectID {
	return e.ref.ID()
}

// Throwable returns a non-owning alias to the managed throwable. The
// alias must not outlive the exception.
func (e *ManagedException) Throwable() *handle.Ref {
	return handle.Alias(e.ref.ID())
}

// Error returns the display message, computing it on first use.
func (e *ManagedException) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.extracted {
		e.populate()
	}
	return e.what
}

// populate runs the extraction chain. It must never panic past the
// accessor; a stage that fails in any way just falls through to the next.
func (e *ManagedException) populate() {
	defer func() {
		if r := recover(); r != nil {
			e.what = exceptionMessageFailure
		}
	}()

	// Message extraction may run on a goroutine with no call context, for
	// example during late cleanup. Degrade rather than fail if one cannot
	// be acquired.
	if detach, err := e.b.Attach(); err == nil {
		defer detach()
	}

	id := e.ref.ID()

	// Stage 1: the diagnostic renderer, which formats the managed stack
	// trace without recursing into user code.
	desc, err1 := invokeString(e.b, id, "getErrorDescription")
	if err1 == nil {
		e.what = desc
		e.extracted = true
		return
	}

	// Stage 2: the object's own string conversion, annotated so the
	// partial failure is visible.
	str, err2 := invokeString(e.b, id, "toString")
	if err2 == nil {
		e.what = str + " (stack trace extraction failure: " + err1.Error() + ")"
		e.extracted = true
		return
	}

	// Stage 3: nothing on the managed side is reachable. Leave extracted
	// false so a later call can retry under a healthier runtime.
	e.what = exceptionMessageFailure
}

// Close releases the owned global reference, acquiring a call context if
// necessary. A failure here means the reference bookkeeping is already
// corrupted, so it terminates the process instead of propagating.
func (e *ManagedException) Close() {
	detach, err := e.b.Attach()
	if err != nil {
		Logger().Fatal("releasing managed exception without a call context",
			zap.Uint64("id", uint64(e.ref.ID())), zap.Error(err))
		return
	}
	defer detach()

	if err := e.ref.Release(e.b); err != nil {
		Logger().Fatal("failed to release managed exception reference",
			zap.Uint64("id", uint64(e.ref.ID())), zap.Error(err))
	}
}

func invokeString(b jvmbridge.Bridge, id jvmbridge.ObjectID, method string) (string, error) {
	v, err := b.InvokeMethod(id, method)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", berrors.New(berrors.PhaseTranslate, berrors.KindInvalidArgument).
			Detail("%s returned %T, want string", method, v).Build()
	}
	return s, nil
}
