// Package config loads bridge runtime settings from a bridge.toml file
// and applies them to the trace registry and the logging setup.
//
// All settings are optional; a missing file or section falls back to the
// defaults, which keep trace capture on and logging quiet.
package config
