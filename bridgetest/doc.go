// Package bridgetest provides an in-memory managed runtime implementing
// the jvmbridge.Bridge contract, for tests and demos.
//
// The VM keeps an object heap keyed by ObjectID with per-kind reference
// counts, a pending-exception slot, weak-reference collection, and a small
// method dispatch table for the throwable operations the translator uses
// (initCause, getErrorDescription, toString). Failure injection flags force
// individual operations to fail so the message-extraction fallback chain
// can be exercised stage by stage.
//
// Reference bookkeeping is strict: releasing a reference kind that was
// never acquired is an error, which makes double-release bugs visible in
// tests. LiveRefs reports the total outstanding references for leak
// assertions.
package bridgetest
