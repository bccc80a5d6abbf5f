package trace

import (
	"runtime"
	"strings"
	"sync/atomic"

	"fortio.org/safecast"

	"github.com/hostlink/jvmbridge"
)

const defaultMaxFrames = 64

var maxFrames atomic.Int32

func init() {
	maxFrames.Store(defaultMaxFrames)
}

// SetMaxFrames bounds how many frames Capture walks. Values below 1 restore
// the default.
func SetMaxFrames(n int) {
	v, err := safecast.Conv[int32](n)
	if err != nil || v < 1 {
		v = defaultMaxFrames
	}
	maxFrames.Store(v)
}

// Capture walks the current goroutine stack and resolves each frame's
// symbol metadata. skip counts frames to omit above the caller of Capture;
// 0 starts at the caller itself.
func Capture(skip int) []jvmbridge.Frame {
	pcs := make([]uintptr, maxFrames.Load())
	// +2 omits runtime.Callers and Capture itself.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]jvmbridge.Frame, 0, n)
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			offset, err := safecast.Conv[uint64](fr.PC - fr.Entry)
			if err != nil {
				offset = 0
			}
			out = append(out, jvmbridge.Frame{
				PC:       fr.PC,
				Function: fr.Function,
				Library:  libraryOf(fr.Function),
				Offset:   offset,
				File:     fr.File,
				Line:     fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return out
}

// libraryOf extracts the package path from a fully qualified symbol name,
// e.g. "github.com/hostlink/jvmbridge/hook.Throw" -> the hook package path.
func libraryOf(fn string) string {
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}
