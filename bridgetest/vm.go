package bridgetest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hostlink/jvmbridge"
	berrors "github.com/hostlink/jvmbridge/errors"
)

type object struct {
	class  string
	msg    string
	code   int
	frames []jvmbridge.Frame
	cause  jvmbridge.ObjectID
	refs   map[jvmbridge.RefKind]int
	alive  bool
}

// VM is an in-memory managed runtime. All methods are safe for concurrent
// use. The failure-injection fields must be set before the operations they
// affect run.
type VM struct {
	mu       sync.Mutex
	nextID   jvmbridge.ObjectID
	objects  map[jvmbridge.ObjectID]*object
	pending  jvmbridge.ObjectID
	detached bool

	// FailDescribe makes getErrorDescription fail.
	FailDescribe bool
	// FailToString makes toString fail.
	FailToString bool
	// FailAttach makes Attach fail with no call context.
	FailAttach bool
}

// NewVM creates an empty managed runtime.
func NewVM() *VM {
	return &VM{
		// Keep VM identities visually distinct from throw identities.
		nextID:  0x1000,
		objects: make(map[jvmbridge.ObjectID]*object),
	}
}

func (vm *VM) newObjectLocked(class, msg string) (*object, jvmbridge.ObjectID) {
	vm.nextID++
	o := &object{
		class: class,
		msg:   msg,
		refs:  make(map[jvmbridge.RefKind]int),
		alive: true,
	}
	vm.objects[vm.nextID] = o
	return o, vm.nextID
}

// NewThrowable creates a rooted throwable with pre-attached managed frames,
// as if the managed runtime had constructed and filled it itself.
func (vm *VM) NewThrowable(class, msg string, frames ...jvmbridge.Frame) jvmbridge.ObjectID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, id := vm.newObjectLocked(class, msg)
	o.frames = append([]jvmbridge.Frame(nil), frames...)
	return id
}

// SetDetached simulates the absence of a call context: bridge operations
// fail with jvmbridge.ErrNoContext until Attach or SetDetached(false).
func (vm *VM) SetDetached(detached bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.detached = detached
}

// CollectWeak simulates garbage collection of an object that is only
// weakly referenced. Weak references to it remain releasable but can no
// longer be upgraded.
func (vm *VM) CollectWeak(id jvmbridge.ObjectID) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if o, ok := vm.objects[id]; ok {
		o.alive = false
	}
}

// RefCount returns the outstanding reference count of one kind.
func (vm *VM) RefCount(id jvmbridge.ObjectID, kind jvmbridge.RefKind) int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if o, ok := vm.objects[id]; ok {
		return o.refs[kind]
	}
	return 0
}

// LiveRefs returns the total outstanding references across all objects and
// kinds, for leak assertions.
func (vm *VM) LiveRefs() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	total := 0
	for _, o := range vm.objects {
		for _, n := range o.refs {
			total += n
		}
	}
	return total
}

// Class returns the class name of an object.
func (vm *VM) Class(id jvmbridge.ObjectID) string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if o, ok := vm.objects[id]; ok {
		return o.class
	}
	return ""
}

// Cause returns the declared cause of a throwable, or 0.
func (vm *VM) Cause(id jvmbridge.ObjectID) jvmbridge.ObjectID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if o, ok := vm.objects[id]; ok {
		return o.cause
	}
	return 0
}

// Code returns the numeric error code attached to a throwable.
func (vm *VM) Code(id jvmbridge.ObjectID) int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if o, ok := vm.objects[id]; ok {
		return o.code
	}
	return 0
}

func (vm *VM) lookupLocked(id jvmbridge.ObjectID) (*object, error) {
	if vm.detached {
		return nil, jvmbridge.ErrNoContext
	}
	o, ok := vm.objects[id]
	if !ok {
		return nil, berrors.InvalidHandle(berrors.PhaseBridge, uint64(id), "unknown object")
	}
	return o, nil
}

// ConstructObject implements jvmbridge.Bridge. The first string argument
// becomes the message; a following int argument becomes the error code.
func (vm *VM) ConstructObject(class, ctor string, args ...any) (jvmbridge.ObjectID, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.detached {
		return 0, jvmbridge.ErrNoContext
	}

	var msg string
	var code int
	for _, a := range args {
		switch v := a.(type) {
		case string:
			msg = v
		case int:
			code = v
		}
	}
	_ = ctor

	o, id := vm.newObjectLocked(class, msg)
	o.code = code
	o.refs[jvmbridge.RefLocal] = 1
	return id, nil
}

// InvokeMethod implements jvmbridge.Bridge.
func (vm *VM) InvokeMethod(id jvmbridge.ObjectID, method string, args ...any) (any, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, err := vm.lookupLocked(id)
	if err != nil {
		return nil, err
	}

	switch method {
	case "initCause":
		if len(args) != 1 {
			return nil, berrors.InvalidArgument("initCause expects one argument")
		}
		cause, ok := args[0].(jvmbridge.ObjectID)
		if !ok {
			return nil, berrors.InvalidArgument("initCause expects an object identity")
		}
		o.cause = cause
		return id, nil

	case "getErrorDescription":
		if vm.FailDescribe {
			return nil, berrors.Runtime("diagnostic renderer unavailable")
		}
		return vm.describeLocked(id), nil

	case "toString":
		if vm.FailToString {
			return nil, berrors.Runtime("toString unavailable")
		}
		return o.class + ": " + o.msg, nil

	case "getClass":
		return o.class, nil

	case "getCause":
		return o.cause, nil

	default:
		return nil, berrors.InvalidArgument("no such method %q on %s", method, o.class)
	}
}

// describeLocked renders the throwable and its cause chain with attached
// frames, the way a managed runtime prints a stack trace.
func (vm *VM) describeLocked(id jvmbridge.ObjectID) string {
	var b strings.Builder
	prefix := ""
	for id != 0 {
		o, ok := vm.objects[id]
		if !ok {
			break
		}
		b.WriteString(prefix)
		b.WriteString(o.class)
		if o.msg != "" {
			b.WriteString(": ")
			b.WriteString(o.msg)
		}
		for _, f := range o.frames {
			b.WriteString("\n\tat ")
			b.WriteString(f.String())
		}
		prefix = "\nCaused by: "
		id = o.cause
	}
	return b.String()
}

// GetMessage implements jvmbridge.Bridge.
func (vm *VM) GetMessage(id jvmbridge.ObjectID) (string, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, err := vm.lookupLocked(id)
	if err != nil {
		return "", err
	}
	return o.msg, nil
}

// GetManagedStackTrace implements jvmbridge.Bridge.
func (vm *VM) GetManagedStackTrace(id jvmbridge.ObjectID) ([]jvmbridge.Frame, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, err := vm.lookupLocked(id)
	if err != nil {
		return nil, err
	}
	out := make([]jvmbridge.Frame, len(o.frames))
	copy(out, o.frames)
	return out, nil
}

// SetManagedStackTrace implements jvmbridge.Bridge.
func (vm *VM) SetManagedStackTrace(id jvmbridge.ObjectID, frames []jvmbridge.Frame) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, err := vm.lookupLocked(id)
	if err != nil {
		return err
	}
	o.frames = append([]jvmbridge.Frame(nil), frames...)
	return nil
}

// CurrentPendingException implements jvmbridge.Bridge.
func (vm *VM) CurrentPendingException() (jvmbridge.ObjectID, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pending, vm.pending != 0
}

// ClearPendingException implements jvmbridge.Bridge.
func (vm *VM) ClearPendingException() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pending = 0
}

// Raise implements jvmbridge.Bridge. The identified object itself becomes
// pending; no copy is made.
func (vm *VM) Raise(id jvmbridge.ObjectID) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, err := vm.lookupLocked(id); err != nil {
		return err
	}
	vm.pending = id
	return nil
}

// NewRef implements jvmbridge.Bridge.
func (vm *VM) NewRef(id jvmbridge.ObjectID, kind jvmbridge.RefKind) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, ok := vm.objects[id]
	if !ok {
		return berrors.InvalidHandle(berrors.PhaseBridge, uint64(id), "unknown object")
	}
	if !o.alive && kind != jvmbridge.RefWeak {
		return berrors.HandleExpired(uint64(id))
	}
	o.refs[kind]++
	return nil
}

// DeleteRef implements jvmbridge.Bridge. Releasing a reference kind that
// was never acquired is an error so over-release shows up in tests.
func (vm *VM) DeleteRef(id jvmbridge.ObjectID, kind jvmbridge.RefKind) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	o, ok := vm.objects[id]
	if !ok {
		return berrors.InvalidHandle(berrors.PhaseBridge, uint64(id), "unknown object")
	}
	if o.refs[kind] <= 0 {
		return berrors.InvalidHandle(berrors.PhaseBridge, uint64(id),
			fmt.Sprintf("no outstanding %s reference", kind))
	}
	o.refs[kind]--
	return nil
}

// IsAlive implements jvmbridge.Bridge.
func (vm *VM) IsAlive(id jvmbridge.ObjectID) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, ok := vm.objects[id]
	return ok && o.alive
}

// Attach implements jvmbridge.Bridge. It acquires a call context if the VM
// is detached and returns a function restoring the previous state.
func (vm *VM) Attach() (func(), error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.FailAttach {
		return nil, jvmbridge.ErrNoContext
	}

	was := vm.detached
	vm.detached = false
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		vm.detached = was
	}, nil
}

var _ jvmbridge.Bridge = (*VM)(nil)
