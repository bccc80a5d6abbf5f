package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseHandle    Phase = "handle"    // reference ownership operations
	PhaseTrace     Phase = "trace"     // trace registry operations
	PhaseHook      Phase = "hook"      // throw entry-point interception
	PhaseTranslate Phase = "translate" // exception translation
	PhaseBridge    Phase = "bridge"    // call bridge operations
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	// Operational conditions of the bridge itself.
	KindTranslationMiss   Kind = "translation_miss"   // no specific category matched
	KindHandleExpired     Kind = "handle_expired"     // weak referent collected
	KindTraceMiss         Kind = "trace_miss"         // no registry entry for identity
	KindDoubleFault       Kind = "double_fault"       // failure while handling a failure
	KindBridgeUnavailable Kind = "bridge_unavailable" // no active call context
	KindInvalidHandle     Kind = "invalid_handle"
	KindDelivery          Kind = "delivery" // raising the translated exception failed

	// Native fault categories, matched against the managed taxonomy.
	KindIO              Kind = "io"
	KindInvalidArgument Kind = "invalid_argument"
	KindAllocation      Kind = "allocation"
	KindOutOfRange      Kind = "out_of_range"
	KindSystem          Kind = "system"
	KindRuntime         Kind = "runtime"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Class  string // managed class involved, if any
	Detail string
	Code   int // platform error code for KindSystem
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Class != "" {
		b.WriteString(" (")
		b.WriteString(e.Class)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Kind == KindSystem {
		fmt.Fprintf(&b, " [errno %d]", e.Code)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Class sets the managed class name
func (b *Builder) Class(c string) *Builder {
	b.err.Class = c
	return b
}

// Code sets the platform error code
func (b *Builder) Code(c int) *Builder {
	b.err.Code = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IO creates an I/O failure error
func IO(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindIO,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// InvalidArgument creates an invalid-argument error
func InvalidArgument(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Allocation creates an allocation failure error
func Allocation(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// OutOfRange creates an out-of-range error
func OutOfRange(index, length int) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// System creates a system error carrying a platform error code
func System(code int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindSystem,
		Code:   code,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Runtime creates a generic runtime error
func Runtime(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindRuntime,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// BridgeUnavailable creates a no-call-context error
func BridgeUnavailable(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBridgeUnavailable,
		Detail: "no active call context",
		Cause:  cause,
	}
}

// HandleExpired creates an expired-weak-reference error
func HandleExpired(id uint64) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindHandleExpired,
		Detail: fmt.Sprintf("referent of weak reference %#x collected", id),
	}
}

// InvalidHandle creates an invalid-handle error
func InvalidHandle(phase Phase, id uint64, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("reference %#x: %s", id, detail),
	}
}

// TraceMiss creates a missing-trace-entry error
func TraceMiss(id uint64) *Error {
	return &Error{
		Phase:  PhaseTrace,
		Kind:   KindTraceMiss,
		Detail: fmt.Sprintf("no captured trace for identity %#x", id),
	}
}

// Delivery creates a delivery failure error
func Delivery(cause error) *Error {
	return &Error{
		Phase:  PhaseTranslate,
		Kind:   KindDelivery,
		Detail: "set pending exception",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
