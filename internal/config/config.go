package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/kestrel/internal/config/loader"
	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/input/mode"
)

const (
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "KESTREL_"

	maxIncludeDepth = 8
	maxPending      = 64
)

// Config is the merged kestrel configuration.
type Config struct {
	Input  InputConfig  `toml:"input" yaml:"input"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Keymap KeymapConfig `toml:"keymap" yaml:"keymap"`
	Theme  ThemeConfig  `toml:"theme" yaml:"theme"`

	path string
}

// InputConfig configures the chord resolver.
type InputConfig struct {
	// ChordTimeout is how long a pending chord waits for its next key.
	ChordTimeout Duration `toml:"chord_timeout" yaml:"chord_timeout"`

	// PendingCapacity bounds the keys a chord may hold.
	PendingCapacity int `toml:"pending_capacity" yaml:"pending_capacity"`

	// InitialMode is the mode new sessions start in.
	InitialMode string `toml:"initial_mode" yaml:"initial_mode"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards it; the terminal owns stderr.
	File string `toml:"file" yaml:"file"`
}

// KeymapConfig lists keymap overlays applied on top of the defaults, in
// order: files, inline bindings, scripts.
type KeymapConfig struct {
	Files    []string         `toml:"files" yaml:"files"`
	Scripts  []string         `toml:"scripts" yaml:"scripts"`
	Bindings []keymap.Binding `toml:"bind" yaml:"bind"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

// UnmarshalText parses strings such as "750ms".
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			ChordTimeout:    Duration(time.Second),
			PendingCapacity: 8,
			InitialMode:     mode.Normal.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultTheme(),
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kestrel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kestrel")
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	envPrefix string
}

// WithFS reads config files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment prefix. Empty disables the
// environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// Load merges the defaults, the file at path and the environment.
// A missing file is not an error. Relative keymap paths are resolved
// against the file's directory.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), envPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	var merged map[string]any
	if path != "" {
		fileConfig, err := loader.NewFileLoaderWithFS(o.fs, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}
	if o.envPrefix != "" {
		envConfig, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		for section := range envConfig {
			if !sections[section] {
				delete(envConfig, section)
			}
		}
		merged = loader.DeepMerge(merged, envConfig)
	}

	cfg := Default()
	cfg.path = path
	if len(merged) > 0 {
		if err := decode(merged, cfg); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	}
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode re-encodes the merged layers as TOML and strictly decodes them
// into cfg, so unknown settings are reported.
func decode(merged map[string]any, cfg *Config) error {
	data, err := toml.Marshal(merged)
	if err != nil {
		return err
	}
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func (c *Config) resolvePaths() {
	base := ""
	if c.path != "" {
		base = filepath.Dir(c.path)
	}
	for i, f := range c.Keymap.Files {
		c.Keymap.Files[i] = expandPath(f, base)
	}
	for i, f := range c.Keymap.Scripts {
		c.Keymap.Scripts[i] = expandPath(f, base)
	}
	if c.Log.File != "" {
		c.Log.File = expandPath(c.Log.File, base)
	}
}

func expandPath(p, base string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	return p
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Mode returns the parsed initial mode.
func (c *Config) Mode() mode.Mode {
	m, err := mode.Parse(c.Input.InitialMode)
	if err != nil {
		return mode.Normal
	}
	return m
}

// Patches parses the keymap files and inline bindings into patches, files
// first. Scripts are run by the plugin runtime.
func (c *Config) Patches() ([]keymap.Patch, error) {
	patches, err := keymap.LoadFiles(c.Keymap.Files)
	if err != nil {
		return nil, err
	}
	inline, err := keymap.ParseBindings(c.Keymap.Bindings)
	if err != nil {
		return nil, fmt.Errorf("keymap.bind: %w", err)
	}
	return append(patches, inline...), nil
}

var sections = map[string]bool{"input": true, "log": true, "keymap": true, "theme": true}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Input.ChordTimeout <= 0 {
		invalid("input.chord_timeout", "must be positive", c.Input.ChordTimeout.Std())
	}
	if c.Input.PendingCapacity < 1 || c.Input.PendingCapacity > maxPending {
		invalid("input.pending_capacity", fmt.Sprintf("must be between 1 and %d", maxPending), c.Input.PendingCapacity)
	}
	if _, err := mode.Parse(c.Input.InitialMode); err != nil {
		invalid("input.initial_mode", err.Error(), c.Input.InitialMode)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		invalid("log.level", "must be debug, info, warn or error", c.Log.Level)
	}
	for i, b := range c.Keymap.Bindings {
		if _, err := b.Patch(); err != nil {
			invalid(fmt.Sprintf("keymap.bind[%d]", i), err.Error(), b.Keys)
		}
	}
	if _, err := c.Theme.Parse(); err != nil {
		invalid("theme", err.Error(), c.Theme)
	}

	return errors.Join(errs...)
}
