package translate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/hostlink/jvmbridge"
	berrors "github.com/hostlink/jvmbridge/errors"
	"github.com/hostlink/jvmbridge/handle"
	"github.com/hostlink/jvmbridge/hook"
	"github.com/hostlink/jvmbridge/trace"
)

// causeLink is one translation unit of a propagating exception: an error
// node plus the throw identity whose registry entry holds its native
// frames, when one exists.
type causeLink struct {
	err error
	id  jvmbridge.ObjectID
}

// denest flattens the cause chain into translation units ordered innermost
// first, so causes exist before the exceptions that declare them. A Thrown
// record contributes its identity to the payload node that follows it
// rather than forming a unit of its own.
func denest(err error) []causeLink {
	var links []causeLink
	var pending jvmbridge.ObjectID

	for e := err; e != nil; e = errors.Unwrap(e) {
		if t, ok := e.(*hook.Thrown); ok {
			pending = t.Identity()
			continue
		}
		links = append(links, causeLink{err: e, id: pending})
		pending = 0
	}
	if len(links) == 0 {
		// A bare record with no payload still translates to something.
		links = append(links, causeLink{id: pending})
	}

	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links
}

// classify maps one native error onto a managed class. The table is
// ordered and the first match wins.
func classify(err error) (class, msg string, extra []any) {
	if err == nil {
		return ClassNativeException, "", nil
	}
	msg = messageOf(err)

	switch e := err.(type) {
	case *berrors.Error:
		if e.Detail != "" {
			msg = e.Detail
		}
		switch e.Kind {
		case berrors.KindIO:
			return ClassIOException, msg, nil
		case berrors.KindInvalidArgument:
			return ClassIllegalArgumentException, msg, nil
		case berrors.KindAllocation:
			return ClassOutOfMemoryError, msg, nil
		case berrors.KindOutOfRange:
			return ClassArrayIndexOutOfBoundsException, msg, nil
		case berrors.KindSystem:
			return ClassNativeSystemErrorException, msg, []any{e.Code}
		default:
			return ClassRuntimeException, msg, nil
		}

	case *fs.PathError:
		return ClassIOException, msg, nil
	case *os.LinkError:
		return ClassIOException, msg, nil
	case *os.SyscallError:
		if errno, ok := e.Err.(syscall.Errno); ok {
			return ClassNativeSystemErrorException, msg, []any{int(errno)}
		}
		return ClassIOException, msg, nil
	case syscall.Errno:
		return ClassNativeSystemErrorException, msg, []any{int(e)}
	}

	switch err {
	case io.EOF, io.ErrUnexpectedEOF, io.ErrClosedPipe, fs.ErrClosed:
		return ClassIOException, msg, nil
	case fs.ErrInvalid:
		return ClassIllegalArgumentException, msg, nil
	}

	if re, ok := err.(runtime.Error); ok {
		s := re.Error()
		if strings.Contains(s, "index out of range") || strings.Contains(s, "slice bounds out of range") {
			return ClassArrayIndexOutOfBoundsException, msg, nil
		}
		// Other runtime faults have no standard counterpart.
		return ClassNativeException, msg, nil
	}

	return ClassRuntimeException, msg, nil
}

// messageOf returns the node's own message, trimming the duplicated text
// of its cause that Go error wrapping appends.
func messageOf(err error) string {
	msg := err.Error()
	if cause := errors.Unwrap(err); cause != nil {
		if s := cause.Error(); s != "" && strings.HasSuffix(msg, s) {
			msg = strings.TrimSuffix(msg, s)
			msg = strings.TrimSuffix(msg, ": ")
		}
	}
	return msg
}

// buildManaged translates one unit into a managed throwable and writes its
// merged stack trace. An already-wrapped managed exception is reused
// directly: no new object is built and the identical handle crosses back.
func buildManaged(b jvmbridge.Bridge, link causeLink) (*handle.Ref, error) {
	if me, ok := link.err.(*ManagedException); ok {
		ref := me.Throwable()
		if err := mergeStack(b, ref.ID(), link.id); err != nil {
			return nil, err
		}
		return ref, nil
	}

	var (
		id  jvmbridge.ObjectID
		err error
	)
	class, msg, extra := classify(link.err)
	switch {
	case msg == "" && len(extra) == 0:
		id, err = b.ConstructObject(class, ctorDefault)
	case len(extra) == 0:
		id, err = b.ConstructObject(class, ctorMessage, msg)
	default:
		id, err = b.ConstructObject(class, ctorMessageCode, append([]any{msg}, extra...)...)
	}
	if err != nil {
		return nil, berrors.New(berrors.PhaseTranslate, berrors.KindTranslationMiss).
			Class(class).Cause(err).Detail("construct managed exception").Build()
	}

	ref := handle.Adopt(id, jvmbridge.RefLocal)
	if err := mergeStack(b, id, link.id); err != nil {
		ref.Release(b)
		return nil, err
	}
	return ref, nil
}

// mergeStack writes the merged frame sequence onto the managed throwable:
// native frames first, then the managed frames already attached. Native
// frames come from the registry entry for identity; a miss falls back to
// capturing the current stack live.
func mergeStack(b jvmbridge.Bridge, obj jvmbridge.ObjectID, identity jvmbridge.ObjectID) error {
	native, ok := trace.Lookup(identity)
	if !ok {
		native = trace.Capture(2)
	}

	managed, err := b.GetManagedStackTrace(obj)
	if err != nil {
		return berrors.Wrap(berrors.PhaseTranslate, berrors.KindTraceMiss, err, "read managed frames")
	}

	merged := make([]jvmbridge.Frame, 0, len(native)+len(managed))
	merged = append(merged, native...)
	merged = append(merged, managed...)
	return b.SetManagedStackTrace(obj, merged)
}

// ToManaged translates a propagating native exception (a recovered panic
// value, usually a *hook.Thrown) into a managed throwable with causes
// chained innermost-first and merged stack traces attached. The returned
// reference is owned by the caller.
func ToManaged(b jvmbridge.Bridge, recovered any) (*handle.Ref, error) {
	switch v := recovered.(type) {
	case *hook.Thrown:
		return buildLinks(b, denest(v))
	case error:
		return buildLinks(b, denest(v))
	default:
		// Raw strings keep their literal text; anything else opaque gets
		// a synthesized placeholder.
		return buildOpaque(b, recovered)
	}
}

// buildOpaque handles non-error payloads.
func buildOpaque(b jvmbridge.Bridge, payload any) (*handle.Ref, error) {
	var id jvmbridge.ObjectID
	var err error
	switch v := payload.(type) {
	case string:
		id, err = b.ConstructObject(ClassNativeException, ctorMessage, v)
	case nil:
		id, err = b.ConstructObject(ClassNativeException, ctorDefault)
	default:
		id, err = b.ConstructObject(ClassNativeException, ctorMessage, fmt.Sprintf("Unknown: %T", v))
	}
	if err != nil {
		return nil, berrors.New(berrors.PhaseTranslate, berrors.KindTranslationMiss).
			Class(ClassNativeException).Cause(err).Detail("construct wrapper").Build()
	}
	ref := handle.Adopt(id, jvmbridge.RefLocal)
	if err := mergeStack(b, id, 0); err != nil {
		ref.Release(b)
		return nil, err
	}
	return ref, nil
}

func buildLinks(b jvmbridge.Bridge, links []causeLink) (*handle.Ref, error) {
	var prev *handle.Ref
	for _, link := range links {
		cur, err := buildManaged(b, link)
		if err != nil {
			if prev != nil {
				prev.Release(b)
			}
			return nil, err
		}
		if prev != nil {
			if _, err := b.InvokeMethod(cur.ID(), "initCause", prev.ID()); err != nil {
				prev.Release(b)
				cur.Release(b)
				return nil, berrors.Wrap(berrors.PhaseTranslate, berrors.KindTranslationMiss, err, "chain cause")
			}
			// The managed object now anchors its cause.
			prev.Release(b)
		}
		prev = cur
	}
	return prev, nil
}

// BackTraceException builds a generic managed wrapper carrying only the
// current native stack, for catch-all paths with nothing concrete to
// translate. An empty msg constructs the wrapper without a message.
func BackTraceException(b jvmbridge.Bridge, msg string) (*handle.Ref, error) {
	var id jvmbridge.ObjectID
	var err error
	if msg == "" {
		id, err = b.ConstructObject(ClassNativeException, ctorDefault)
	} else {
		id, err = b.ConstructObject(ClassNativeException, ctorMessage, msg)
	}
	if err != nil {
		return nil, berrors.New(berrors.PhaseTranslate, berrors.KindTranslationMiss).
			Class(ClassNativeException).Cause(err).Detail("construct backtrace wrapper").Build()
	}
	ref := handle.Adopt(id, jvmbridge.RefLocal)
	if err := mergeStack(b, id, 0); err != nil {
		ref.Release(b)
		return nil, err
	}
	return ref, nil
}

// CurrentAsManaged surfaces whatever a native catch-all recovered. With a
// nil payload it captures the current context instead.
func CurrentAsManaged(b jvmbridge.Bridge, recovered any) (*handle.Ref, error) {
	if recovered == nil {
		return BackTraceException(b, "")
	}
	return ToManaged(b, recovered)
}

// DeliverPending translates a recovered native exception and delivers it
// to the managed caller as the pending exception. A failure while already
// handling the failure is unrecoverable: it is logged and the process
// terminates rather than continuing with corrupted bookkeeping.
func DeliverPending(b jvmbridge.Bridge, recovered any) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Fatal("unexpected panic while delivering exception",
				zap.Any("panic", r),
				zap.Error(berrors.New(berrors.PhaseTranslate, berrors.KindDoubleFault).
					Detail("translation of a translation failed").Build()))
		}
	}()

	ref, err := ToManaged(b, recovered)
	if err != nil {
		Logger().Fatal("unable to translate native exception",
			zap.Error(berrors.Wrap(berrors.PhaseTranslate, berrors.KindDoubleFault, err, "translate")))
		return
	}
	if err := b.Raise(ref.ID()); err != nil {
		Logger().Fatal("unable to deliver managed exception",
			zap.Error(berrors.Delivery(err)))
		return
	}
	ref.Release(b)

	if t, ok := hook.AsThrown(recovered); ok {
		hook.Free(t)
	}
}

// ThrowIfPending raises a pending managed exception as a native exception
// wrapping the very same throwable. It returns normally when nothing is
// pending; otherwise it does not return.
func ThrowIfPending(b jvmbridge.Bridge) {
	id, ok := b.CurrentPendingException()
	if !ok {
		return
	}
	b.ClearPendingException()

	me, err := Wrap(b, id)
	if err != nil {
		hook.Throw(berrors.Wrap(berrors.PhaseTranslate, berrors.KindInvalidHandle, err,
			"unable to take ownership of pending exception"))
	}
	hook.ThrowWithCleanup(me, me.Close)
}

// RaiseNative constructs a named managed exception and raises it as a
// native exception. It does not return.
func RaiseNative(b jvmbridge.Bridge, class, msg string) {
	id, err := b.ConstructObject(class, ctorMessage, msg)
	if err != nil {
		hook.Throw(berrors.New(berrors.PhaseTranslate, berrors.KindTranslationMiss).
			Class(class).Cause(err).Detail("construct %s", class).Build())
	}

	me, err := Wrap(b, id)
	// Drop the construction-time local reference either way; the wrapper
	// owns its own global one.
	handle.Adopt(id, jvmbridge.RefLocal).Release(b)
	if err != nil {
		hook.Throw(err)
	}
	hook.ThrowWithCleanup(me, me.Close)
}
