package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	berrors "github.com/hostlink/jvmbridge/errors"
	"github.com/hostlink/jvmbridge/trace"
	"github.com/hostlink/jvmbridge/translate"
)

// FileName is the configuration file searched for by Find.
const FileName = "bridge.toml"

// Config is the root of bridge.toml.
type Config struct {
	Trace TraceConfig `toml:"trace"`
	Log   LogConfig   `toml:"log"`
}

// TraceConfig controls native stack capture at throw time.
type TraceConfig struct {
	// Enabled toggles capture. Off, throws skip the registry entirely.
	Enabled bool `toml:"enabled"`
	// DisableRegistry swaps the shared registry for a no-op one. Capture
	// toggling still works but nothing is retained.
	DisableRegistry bool `toml:"disable_registry"`
	// MaxFrames bounds a single capture.
	MaxFrames int `toml:"max_frames"`
}

// LogConfig controls the translator's logger. An empty level leaves the
// default silent logger in place.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Trace: TraceConfig{
			Enabled:   true,
			MaxFrames: 64,
		},
	}
}

// Load reads and validates a bridge.toml. Absent keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, berrors.New(berrors.PhaseConfig, berrors.KindIO).
			Cause(err).Detail("parse %s", path).Build()
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, berrors.New(berrors.PhaseConfig, berrors.KindInvalidArgument).
			Detail("%s: unknown keys: %s", path, strings.Join(keys, ", ")).Build()
	}
	if cfg.Trace.MaxFrames <= 0 {
		return Config{}, berrors.New(berrors.PhaseConfig, berrors.KindInvalidArgument).
			Detail("%s: [trace].max_frames must be positive", path).Build()
	}
	return cfg, nil
}

// Find walks up from startDir looking for a bridge.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, berrors.New(berrors.PhaseConfig, berrors.KindIO).
			Cause(err).Detail("resolve start directory").Build()
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, berrors.New(berrors.PhaseConfig, berrors.KindIO).
				Cause(err).Detail("stat %s", candidate).Build()
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Apply installs the settings: trace toggles first, then the logger.
func (c Config) Apply() error {
	trace.SetCaptureEnabled(c.Trace.Enabled)
	if c.Trace.MaxFrames > 0 {
		trace.SetMaxFrames(c.Trace.MaxFrames)
	}
	if c.Trace.DisableRegistry {
		trace.SetDefault(trace.NewNopRegistry())
	}

	logger, err := c.buildLogger()
	if err != nil {
		return err
	}
	translate.SetLogger(logger)
	return nil
}

func (c Config) buildLogger() (*zap.Logger, error) {
	if c.Log.Level == "" {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, berrors.New(berrors.PhaseConfig, berrors.KindInvalidArgument).
			Cause(err).Detail("parse [log].level %q", c.Log.Level).Build()
	}
	zcfg := zap.NewProductionConfig()
	if c.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return nil, berrors.New(berrors.PhaseConfig, berrors.KindSystem).
			Cause(err).Detail("build logger").Build()
	}
	return logger, nil
}
