package handle

import (
	"sync/atomic"

	"github.com/hostlink/jvmbridge"
	berrors "github.com/hostlink/jvmbridge/errors"
)

// Ref is one owned (or borrowed, for aliases) reference to a managed
// object. The zero value is invalid; use the Acquire/Adopt/Alias
// constructors.
type Ref struct {
	id       jvmbridge.ObjectID
	kind     jvmbridge.RefKind
	released atomic.Bool
}

// ID returns the object identity this reference points at.
func (r *Ref) ID() jvmbridge.ObjectID {
	return r.id
}

// Kind returns the ownership kind.
func (r *Ref) Kind() jvmbridge.RefKind {
	return r.kind
}

// Released reports whether the reference has been released.
func (r *Ref) Released() bool {
	return r.released.Load()
}

func acquire(b jvmbridge.Bridge, id jvmbridge.ObjectID, kind jvmbridge.RefKind) (*Ref, error) {
	if id == 0 {
		return nil, berrors.InvalidHandle(berrors.PhaseHandle, 0, "zero identity")
	}
	if err := b.NewRef(id, kind); err != nil {
		return nil, berrors.Wrap(berrors.PhaseHandle, berrors.KindInvalidHandle, err, "acquire "+kind.String())
	}
	return &Ref{id: id, kind: kind}, nil
}

// AcquireLocal registers a new local reference to the object.
func AcquireLocal(b jvmbridge.Bridge, id jvmbridge.ObjectID) (*Ref, error) {
	return acquire(b, id, jvmbridge.RefLocal)
}

// AcquireGlobal registers a new global reference to the object.
func AcquireGlobal(b jvmbridge.Bridge, id jvmbridge.ObjectID) (*Ref, error) {
	return acquire(b, id, jvmbridge.RefGlobal)
}

// AcquireWeak registers a new weak reference to the object. The referent
// may be collected at any time; Upgrade before use.
func AcquireWeak(b jvmbridge.Bridge, id jvmbridge.ObjectID) (*Ref, error) {
	return acquire(b, id, jvmbridge.RefWeak)
}

// Adopt wraps a reference the bridge has already created (for example the
// local reference returned by ConstructObject) without registering another
// one. The caller takes over the release obligation.
func Adopt(id jvmbridge.ObjectID, kind jvmbridge.RefKind) *Ref {
	return &Ref{id: id, kind: kind}
}

// Alias wraps an identity without taking ownership. The alias borrows
// validity from a reference owned elsewhere and must not outlive it.
func Alias(id jvmbridge.ObjectID) *Ref {
	return &Ref{id: id, kind: jvmbridge.RefAlias}
}

// Release gives up the reference. It is idempotent: releasing an already
// released reference is a no-op, and releasing an alias is always a no-op.
// Calling it remains the owner's exclusive responsibility.
func (r *Ref) Release(b jvmbridge.Bridge) error {
	if r == nil || r.kind == jvmbridge.RefAlias {
		return nil
	}
	if !r.released.CompareAndSwap(false, true) {
		return nil
	}
	if err := b.DeleteRef(r.id, r.kind); err != nil {
		return berrors.Wrap(berrors.PhaseHandle, berrors.KindInvalidHandle, err, "release "+r.kind.String())
	}
	return nil
}

// Upgrade turns a weak reference into a new global reference. It returns
// false when the referent has been collected; callers must treat that as a
// normal outcome, not an error.
func (r *Ref) Upgrade(b jvmbridge.Bridge) (*Ref, bool) {
	if r == nil || r.kind != jvmbridge.RefWeak || r.released.Load() {
		return nil, false
	}
	if !b.IsAlive(r.id) {
		return nil, false
	}
	g, err := AcquireGlobal(b, r.id)
	if err != nil {
		// The referent went away between the liveness check and the
		// acquisition; same outcome as an expired upgrade.
		return nil, false
	}
	return g, true
}
