package jvmbridge

import (
	"errors"
	"fmt"
	"strings"
)

// ObjectID is an opaque identity token for one object owned by the managed
// runtime. It is unique while the object is alive and is never reused for a
// live object. ID 0 is reserved and always invalid.
type ObjectID uint64

// RefKind classifies the ownership strength of a reference to a managed
// object.
type RefKind uint8

const (
	// RefLocal is valid only within the dynamic extent of the native call
	// frame that created it and must be released before that frame returns.
	RefLocal RefKind = iota + 1

	// RefGlobal remains valid until explicitly released and may be used
	// across frames and goroutines.
	RefGlobal

	// RefWeak never blocks collection of the referent and must be upgraded
	// to a global reference before use.
	RefWeak

	// RefAlias borrows validity from a reference owned elsewhere and
	// carries no release obligation.
	RefAlias
)

// String returns the lowercase name of the kind.
func (k RefKind) String() string {
	switch k {
	case RefLocal:
		return "local"
	case RefGlobal:
		return "global"
	case RefWeak:
		return "weak"
	case RefAlias:
		return "alias"
	default:
		return fmt.Sprintf("refkind(%d)", uint8(k))
	}
}

// Frame is one stack frame, native or managed. Native frames carry a PC and
// library metadata; managed frames carry class/method information in
// Function and a source position.
type Frame struct {
	Function string
	Library  string
	File     string
	PC       uintptr
	Offset   uint64
	Line     int
}

// String renders the frame in a single line suitable for diagnostics.
func (f Frame) String() string {
	var b strings.Builder
	b.WriteString(f.Function)
	if f.Library != "" {
		b.WriteString(" [")
		b.WriteString(f.Library)
		if f.Offset != 0 {
			fmt.Fprintf(&b, "+0x%x", f.Offset)
		}
		b.WriteByte(']')
	}
	if f.File != "" {
		fmt.Fprintf(&b, " (%s:%d)", f.File, f.Line)
	}
	return b.String()
}

// ErrNoContext is returned by bridge operations invoked without an active
// call context (for example from a finalizer goroutine that has not attached
// to the managed runtime).
var ErrNoContext = errors.New("no active call context on this thread")

// Bridge is the pre-existing call bridge into the managed runtime. It is an
// external collaborator: this module only consumes and produces through it.
// All operations are synchronous; implementations must be safe for use from
// multiple goroutines.
type Bridge interface {
	// ConstructObject builds a new managed object of the named class using
	// the constructor selected by ctor. The returned reference is a fresh
	// local reference owned by the caller.
	ConstructObject(class, ctor string, args ...any) (ObjectID, error)

	// InvokeMethod calls a method on the object and returns its result.
	InvokeMethod(id ObjectID, method string, args ...any) (any, error)

	// GetMessage returns the object's message text (throwables only).
	GetMessage(id ObjectID) (string, error)

	// GetManagedStackTrace reads the managed-side frames attached to a
	// throwable.
	GetManagedStackTrace(id ObjectID) ([]Frame, error)

	// SetManagedStackTrace replaces the frames attached to a throwable.
	SetManagedStackTrace(id ObjectID, frames []Frame) error

	// CurrentPendingException reports the throwable pending on the current
	// call context, if any.
	CurrentPendingException() (ObjectID, bool)

	// ClearPendingException clears the pending throwable, if any.
	ClearPendingException()

	// Raise marks the throwable as the pending exception for the managed
	// caller. The same object, not a copy, becomes pending.
	Raise(id ObjectID) error

	// NewRef registers one additional reference of the given kind.
	NewRef(id ObjectID, kind RefKind) error

	// DeleteRef releases one reference of the given kind.
	DeleteRef(id ObjectID, kind RefKind) error

	// IsAlive reports whether the referent of a weak reference is still
	// reachable. A false result is a normal outcome, not a fault.
	IsAlive(id ObjectID) bool

	// Attach ensures the calling goroutine has a valid call context,
	// acquiring one if necessary. The returned function restores the
	// previous state and must be called when the caller is done.
	Attach() (func(), error)
}
