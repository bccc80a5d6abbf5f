package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hostlink/jvmbridge/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
[trace]
enabled = false
disable_registry = true
max_frames = 16

[log]
level = "debug"
development = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Trace.Enabled {
		t.Error("trace.enabled not applied")
	}
	if !cfg.Trace.DisableRegistry {
		t.Error("trace.disable_registry not applied")
	}
	if cfg.Trace.MaxFrames != 16 {
		t.Errorf("max_frames = %d, want 16", cfg.Trace.MaxFrames)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "[trace]\nenbaled = true\n")

	if _, err := Load(path); err == nil {
		t.Error("misspelled key must be rejected")
	}
}

func TestLoad_InvalidMaxFrames(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "[trace]\nmax_frames = 0\n")

	if _, err := Load(path); err == nil {
		t.Error("non-positive max_frames must be rejected")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Error("missing file must fail")
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if path != filepath.Join(root, FileName) {
		t.Errorf("path = %s", path)
	}

	_, ok, err = Find(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a bridge.toml where none exists")
	}
}

func TestApply_TraceToggles(t *testing.T) {
	t.Cleanup(func() {
		trace.SetCaptureEnabled(true)
		trace.SetMaxFrames(64)
	})

	cfg := Default()
	cfg.Trace.Enabled = false
	if err := cfg.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if trace.CaptureEnabled() {
		t.Error("capture still enabled")
	}

	cfg.Trace.Enabled = true
	if err := cfg.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !trace.CaptureEnabled() {
		t.Error("capture not re-enabled")
	}
}

func TestBuildLogger(t *testing.T) {
	var cfg Config
	logger, err := cfg.buildLogger()
	if err != nil || logger == nil {
		t.Fatalf("default logger: %v", err)
	}

	cfg.Log.Level = "warn"
	if _, err := cfg.buildLogger(); err != nil {
		t.Errorf("valid level: %v", err)
	}

	cfg.Log.Level = "shouting"
	if _, err := cfg.buildLogger(); err == nil {
		t.Error("invalid level must fail")
	}
}
