package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseTranslate,
				Kind:   KindTranslationMiss,
				Class:  "com/hostlink/bridge/NativeException",
				Detail: "no category matched",
			},
			contains: []string{"[translate]", "translation_miss", "NativeException", "no category matched"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTrace,
				Kind:  KindTraceMiss,
			},
			contains: []string{"[trace]", "trace_miss"},
		},
		{
			name: "system error with code",
			err: &Error{
				Phase:  PhaseBridge,
				Kind:   KindSystem,
				Code:   13,
				Detail: "permission denied",
			},
			contains: []string{"[bridge]", "system", "permission denied", "errno 13"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHandle,
				Kind:   KindInvalidHandle,
				Detail: "already released",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[handle]", "invalid_handle", "already released", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseBridge,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseTranslate,
		Kind:   KindDoubleFault,
		Detail: "secondary failure",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseTranslate, Kind: KindDoubleFault}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseHook, Kind: KindDoubleFault}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseTranslate, Kind: KindDelivery}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseTranslate, Kind: KindDoubleFault}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseTranslate, KindSystem).
		Class("com/hostlink/bridge/NativeSystemErrorException").
		Code(28).
		Value(42).
		Cause(cause).
		Detail("no space left on %s", "device").
		Build()

	if err.Phase != PhaseTranslate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseTranslate)
	}
	if err.Kind != KindSystem {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSystem)
	}
	if err.Class != "com/hostlink/bridge/NativeSystemErrorException" {
		t.Errorf("Class = %v", err.Class)
	}
	if err.Code != 28 {
		t.Errorf("Code = %v, want 28", err.Code)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "no space left on device" {
		t.Errorf("Detail = %v, want 'no space left on device'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("IO", func(t *testing.T) {
		err := IO("read %s failed", "socket")
		if err.Kind != KindIO {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
		}
		if err.Detail != "read socket failed" {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument("count must be positive")
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
	})

	t.Run("Allocation", func(t *testing.T) {
		err := Allocation("failed to allocate %d bytes", 1024)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(10, 5)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("System", func(t *testing.T) {
		err := System(32, "broken pipe")
		if err.Kind != KindSystem {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSystem)
		}
		if err.Code != 32 {
			t.Errorf("Code = %v, want 32", err.Code)
		}
	})

	t.Run("Runtime", func(t *testing.T) {
		err := Runtime("state machine wedged")
		if err.Kind != KindRuntime {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
		}
	})

	t.Run("BridgeUnavailable", func(t *testing.T) {
		cause := errors.New("detached")
		err := BridgeUnavailable(PhaseTranslate, cause)
		if err.Kind != KindBridgeUnavailable {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBridgeUnavailable)
		}
		if !errors.Is(err, &Error{Phase: PhaseTranslate, Kind: KindBridgeUnavailable}) {
			t.Error("errors.Is should match")
		}
	})

	t.Run("HandleExpired", func(t *testing.T) {
		err := HandleExpired(0xdead)
		if err.Kind != KindHandleExpired {
			t.Errorf("Kind = %v, want %v", err.Kind, KindHandleExpired)
		}
		if !strings.Contains(err.Detail, "0xdead") {
			t.Errorf("Detail = %v, should contain identity", err.Detail)
		}
	})

	t.Run("TraceMiss", func(t *testing.T) {
		err := TraceMiss(7)
		if err.Kind != KindTraceMiss {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTraceMiss)
		}
	})

	t.Run("Delivery", func(t *testing.T) {
		cause := errors.New("raise rejected")
		err := Delivery(cause)
		if err.Kind != KindDelivery {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDelivery)
		}
		if !errors.Is(err, cause) {
			t.Error("Delivery should wrap its cause")
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseConfig, KindInvalidArgument, cause, "parse bridge.toml")
		if err.Phase != PhaseConfig {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseConfig)
		}
		if !errors.Is(err, cause) {
			t.Error("Wrap should chain cause")
		}
	})
}
