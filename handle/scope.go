package handle

import (
	"github.com/hostlink/jvmbridge"
)

// Scope models the dynamic extent of one native call frame. Local
// references acquired through a scope are released together when the scope
// closes, before the frame returns. A Scope belongs to a single goroutine
// and is not safe for concurrent use.
type Scope struct {
	b      jvmbridge.Bridge
	refs   []*Ref
	closed bool
}

// NewScope opens a scope over the given bridge.
func NewScope(b jvmbridge.Bridge) *Scope {
	return &Scope{b: b}
}

// Local acquires a local reference tracked by the scope.
func (s *Scope) Local(id jvmbridge.ObjectID) (*Ref, error) {
	r, err := AcquireLocal(s.b, id)
	if err != nil {
		return nil, err
	}
	s.refs = append(s.refs, r)
	return r, nil
}

// Adopt takes over a bridge-created local reference and tracks it.
func (s *Scope) Adopt(id jvmbridge.ObjectID) *Ref {
	r := Adopt(id, jvmbridge.RefLocal)
	s.refs = append(s.refs, r)
	return r
}

// Close releases every tracked reference in reverse acquisition order.
// References already released individually are skipped. Close is
// idempotent; the first error encountered is returned, later releases
// still run.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var first error
	for i := len(s.refs) - 1; i >= 0; i-- {
		if err := s.refs[i].Release(s.b); err != nil && first == nil {
			first = err
		}
	}
	s.refs = nil
	return first
}
