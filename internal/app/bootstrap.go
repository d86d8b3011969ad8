package app

import (
	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/plugin/lua"
)

// LoadConfig loads the configuration at path and applies override, which
// carries command-line flags. The result is validated after override.
func LoadConfig(path string, override func(*config.Config), opts ...config.Option) (*config.Config, error) {
	cfg, err := config.Load(path, opts...)
	if err != nil {
		return nil, NewComponentError("config", "load", err)
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, NewComponentError("config", "flags", err)
		}
	}
	return cfg, nil
}

// BuildKeymaps layers the configured overlays over base: keymap files,
// inline bindings, then Lua scripts. Script output is sent to log.
func BuildKeymaps(base *keymap.Keymaps, cfg *config.Config, log *Logger) (*keymap.Patched, error) {
	patches, err := cfg.Patches()
	if err != nil {
		return nil, NewComponentError("keymap", "load", err)
	}

	scriptLog := log.WithComponent("lua")
	scripted, err := lua.LoadScripts(cfg.Keymap.Scripts, lua.WithPrinter(func(s string) {
		scriptLog.Info("%s", s)
	}))
	if err != nil {
		return nil, NewComponentError("keymap", "scripts", err)
	}

	p := keymap.NewPatched(base)
	p.Apply(patches...)
	p.Apply(scripted...)
	log.Debug("keymaps: %d file and inline patches, %d scripted", len(patches), len(scripted))
	return p, nil
}

// NewLoggerFromConfig opens the configured log file, or returns a logger
// that discards everything when none is set.
func NewLoggerFromConfig(cfg config.LogConfig) (*Logger, error) {
	level := ParseLogLevel(cfg.Level)
	if cfg.File == "" {
		l := NewLogger(DefaultLoggerConfig())
		l.SetLevel(level)
		return l, nil
	}
	l, err := OpenLogFile(cfg.File, level)
	if err != nil {
		return nil, NewComponentError("log", "open", err)
	}
	return l, nil
}
