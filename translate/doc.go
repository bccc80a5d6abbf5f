// Package translate converts exceptions across the native/managed boundary
// in both directions.
//
// # Native to Managed
//
// ToManaged walks the cause chain of a propagating native exception from
// innermost to outermost, classifies each link against an ordered
// first-match-wins table of native fault categories, constructs the mapped
// managed exception class through the call bridge, links causes with
// initCause, and writes a merged stack trace onto each managed object:
// all native frames first, then the previously attached managed frames.
// Native frames come from the trace registry entry recorded at throw time,
// falling back to a live capture when no entry exists.
//
// An exception that already wraps a managed throwable is unwrapped and its
// owned handle reused directly, so the identical managed object crosses
// back over the boundary and identity-sensitive checks on the managed side
// keep working.
//
// # Managed to Native
//
// ThrowIfPending clears a pending managed exception, takes ownership of
// the throwable as a global reference, and raises it natively as a
// ManagedException whose display message is computed lazily through a
// three-stage fallback chain that never fails outward.
//
// # Fatal Paths
//
// A failure while translating or delivering a failure is not retryable:
// the implementation logs what it can and terminates the process rather
// than continuing with corrupted exception bookkeeping.
package translate
