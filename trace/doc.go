// Package trace maintains the process-wide registry of captured native
// stack traces, keyed by exception identity.
//
// An entry is recorded when an exception is raised through the hooked throw
// entry point, survives any number of rethrows, and is removed exactly once
// when the exception record is finally destroyed. Entries pair the captured
// frames with the deferred cleanup action taken from the original throw
// call, so the destruction path can run registry removal and the original
// cleanup in order.
//
// # Capture Toggle
//
// Capture is a best-effort diagnostic feature gated by an atomic flag read
// without the registry lock. Races around the toggle point are tolerable:
// at worst one exception near the flip is missed or spuriously captured.
//
// # Lifetime
//
// The default registry is allocated lazily on first use and intentionally
// never torn down. Exception cleanup during process shutdown, including
// cleanup running inside other packages' teardown code, must still be able
// to query it safely. This is a documented policy, not a leak.
//
// For environments without stable hook points, SetDefault(NewNopRegistry())
// turns trace capture into a no-op while preserving all other behavior.
package trace
