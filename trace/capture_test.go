package trace

import (
	"strings"
	"testing"
)

func TestCapture_Basic(t *testing.T) {
	frames := Capture(0)
	if len(frames) == 0 {
		t.Fatal("Capture returned no frames")
	}

	// The first frame is this test function.
	if !strings.Contains(frames[0].Function, "TestCapture_Basic") {
		t.Fatalf("first frame = %q, want the caller", frames[0].Function)
	}
	if frames[0].Line == 0 {
		t.Error("frame has no line number")
	}
	if frames[0].Library == "" {
		t.Error("frame has no library")
	}
}

func TestCapture_Skip(t *testing.T) {
	var inner func() []string
	inner = func() []string {
		var names []string
		for _, f := range Capture(1) {
			names = append(names, f.Function)
		}
		return names
	}

	names := inner()
	if len(names) == 0 {
		t.Fatal("no frames")
	}
	// skip=1 must omit the closure and start at the test function.
	if !strings.Contains(names[0], "TestCapture_Skip") {
		t.Fatalf("first frame = %q, want test function", names[0])
	}
}

func TestCapture_MaxFrames(t *testing.T) {
	SetMaxFrames(2)
	t.Cleanup(func() { SetMaxFrames(defaultMaxFrames) })

	var deep func(n int) int
	deep = func(n int) int {
		if n == 0 {
			return len(Capture(0))
		}
		return deep(n - 1)
	}

	if got := deep(10); got > 2 {
		t.Fatalf("captured %d frames with limit 2", got)
	}
}

func TestLibraryOf(t *testing.T) {
	tests := []struct {
		fn   string
		want string
	}{
		{"github.com/hostlink/jvmbridge/hook.Throw", "github.com/hostlink/jvmbridge/hook"},
		{"github.com/hostlink/jvmbridge/trace.Capture.func1", "github.com/hostlink/jvmbridge/trace"},
		{"main.main", "main"},
		{"runtime.gopanic", "runtime"},
		{"noDotAtAll", "noDotAtAll"},
	}

	for _, tt := range tests {
		if got := libraryOf(tt.fn); got != tt.want {
			t.Errorf("libraryOf(%q) = %q, want %q", tt.fn, got, tt.want)
		}
	}
}
