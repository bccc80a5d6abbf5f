// Package hook intercepts the process-wide throw entry point so that every
// native exception carries a stack trace captured at the moment it was
// raised.
//
// All throw paths in this library go through Throw, a function this package
// owns, rather than patching the host runtime. Install replaces the entry
// point with a wrapper that records the fresh stack trace and the original
// per-exception cleanup action into the trace registry, then delegates to
// the saved original entry point with a trampoline substituted as the
// cleanup. When the exception record is finally destroyed, the trampoline
// removes the registry entry and runs the original cleanup.
//
// Raising is the only point at which the exception's final identity and a
// fresh native call stack are simultaneously available; catch and rethrow
// must work by identity lookup rather than by re-capturing. Rethrow
// re-raises the identical record, so the registry entry recorded at the
// original throw remains valid.
//
// For environments where the entry point is bound elsewhere and must be
// redirected by a low-level code-patching facility, HookInfo exposes the
// slot being mutated and the replacement address; the patcher stores the
// unhooked entry point back through Info.Original so the wrapper can
// delegate to it.
package hook
