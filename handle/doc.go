// Package handle implements the ownership model for references to objects
// owned by the managed runtime.
//
// A Ref wraps one object identity with an ownership kind:
//
//	local   - valid only within the call frame that created it; release
//	          before the frame returns, or let a Scope do it
//	global  - valid until explicitly released, usable across frames and
//	          goroutines
//	weak    - never blocks collection of the referent; must be upgraded
//	          (fallibly) to a global reference before use
//	alias   - borrows validity from a reference owned elsewhere and
//	          carries no release obligation
//
// Release is idempotent, but calling it is the owner's exclusive
// responsibility: no other holder of the same identity may release it. An
// alias must not be stored beyond the lifetime of the reference it borrows
// from; this is a caller contract, not enforced here.
//
// A failed weak upgrade means the referent was collected. Callers must
// treat it as a normal outcome, not a fault.
package handle
