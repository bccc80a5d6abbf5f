package hook

import (
	"sync/atomic"

	"github.com/hostlink/jvmbridge"
)

var identities atomic.Uint64

// Thrown is the single owned record for one propagating native exception.
// The *Thrown pointer itself is the propagation token: rethrowing passes
// the same record, never a copy, so identity-based trace lookups remain
// valid across any number of rethrows.
type Thrown struct {
	err     error
	cleanup func()
	id      jvmbridge.ObjectID
	freed   atomic.Bool
}

func newThrown(err error, cleanup func()) *Thrown {
	return &Thrown{
		err:     err,
		cleanup: cleanup,
		id:      jvmbridge.ObjectID(identities.Add(1)),
	}
}

// Identity returns the stable identity token for this exception. It is
// unique while the record is alive and never changes across rethrow.
func (t *Thrown) Identity() jvmbridge.ObjectID {
	return t.id
}

// Error returns the message of the wrapped error.
func (t *Thrown) Error() string {
	if t.err == nil {
		return "native exception"
	}
	return t.err.Error()
}

// Unwrap exposes the wrapped error for cause-chain traversal.
func (t *Thrown) Unwrap() error {
	return t.err
}

// AsThrown extracts the exception record from a recovered panic value.
func AsThrown(recovered any) (*Thrown, bool) {
	t, ok := recovered.(*Thrown)
	return t, ok
}
