// Package jvmbridge provides the shared contract between native Go code and
// a managed runtime that owns garbage-collected objects.
//
// The library lets the two sides share object identity safely and exchange
// exceptions without losing diagnostic information: references to managed
// objects are held through ownership-classified handles, and every native
// throw can carry a captured native stack trace that is later merged into
// the managed exception surfaced to the caller.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jvmbridge/          Root package with the Bridge contract, ObjectID and Frame
//	├── handle/         Handle ownership model (local/global/weak/alias)
//	├── trace/          Trace registry and native frame capture
//	├── hook/           Throw entry-point interception and trace bookkeeping
//	├── translate/      Bidirectional exception translation and ManagedException
//	├── config/         TOML configuration for capture and logging
//	├── bridgetest/     In-memory managed runtime for tests and demos
//	└── errors/         Structured error types for debugging
//
// # Quick Start
//
// Install the throw hook once at startup, then let exceptions flow:
//
//	hook.Install()
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        translate.DeliverPending(b, r)
//	    }
//	}()
//
//	if err := doNativeWork(); err != nil {
//	    hook.Throw(err)
//	}
//
// When the managed runtime returns control with a pending exception, surface
// it natively. ThrowIfPending returns normally when nothing is pending and
// panics with the wrapped throwable otherwise:
//
//	translate.ThrowIfPending(b)
//
// # Thread Safety
//
// The trace registry and the installed hook are process-wide and safe for
// concurrent use from any goroutine, including goroutines not created by
// this library. Exceptions may be thrown on one goroutine and destroyed on
// another; all bookkeeping is keyed by object identity, never by
// goroutine-local state.
//
// # Shutdown
//
// The trace registry is created lazily on first use and intentionally never
// torn down, so exception cleanup running during process shutdown (including
// inside other packages' teardown code) can still query it safely.
package jvmbridge
