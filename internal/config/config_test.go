package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/kestrel/internal/input/mode"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Input.ChordTimeout.Std() != time.Second {
		t.Errorf("ChordTimeout = %v, want 1s", cfg.Input.ChordTimeout.Std())
	}
	if cfg.Input.PendingCapacity != 8 {
		t.Errorf("PendingCapacity = %d, want 8", cfg.Input.PendingCapacity)
	}
	if cfg.Mode() != mode.Normal {
		t.Errorf("Mode() = %v, want normal", cfg.Mode())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("", WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input != Default().Input {
		t.Errorf("Input = %+v, want defaults", cfg.Input)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"), WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[input]
chord_timeout = "750ms"
initial_mode = "insert"

[log]
level = "debug"
file = "kestrel.log"

[keymap]
files = ["keys.yaml"]
scripts = ["keys.lua"]

[[keymap.bind]]
mode = "insert"
keys = "j k"
action = "mode.normal"

[theme]
status_bg = "#000000"
`)

	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.ChordTimeout.Std() != 750*time.Millisecond {
		t.Errorf("ChordTimeout = %v", cfg.Input.ChordTimeout.Std())
	}
	if cfg.Input.PendingCapacity != 8 {
		t.Errorf("PendingCapacity = %d, want default 8", cfg.Input.PendingCapacity)
	}
	if cfg.Mode() != mode.Insert {
		t.Errorf("Mode() = %v, want insert", cfg.Mode())
	}
	if cfg.Log.File != filepath.Join(dir, "kestrel.log") {
		t.Errorf("Log.File = %q, want resolved against %q", cfg.Log.File, dir)
	}
	if len(cfg.Keymap.Files) != 1 || cfg.Keymap.Files[0] != filepath.Join(dir, "keys.yaml") {
		t.Errorf("Keymap.Files = %v", cfg.Keymap.Files)
	}
	if len(cfg.Keymap.Scripts) != 1 || cfg.Keymap.Scripts[0] != filepath.Join(dir, "keys.lua") {
		t.Errorf("Keymap.Scripts = %v", cfg.Keymap.Scripts)
	}
	if len(cfg.Keymap.Bindings) != 1 || cfg.Keymap.Bindings[0].Action != "mode.normal" {
		t.Errorf("Keymap.Bindings = %+v", cfg.Keymap.Bindings)
	}
	if cfg.Theme.StatusBG != "#000000" || cfg.Theme.StatusFG != DefaultTheme().StatusFG {
		t.Errorf("Theme = %+v", cfg.Theme)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
input:
  pending_capacity: 3
keymap:
  bind:
    - mode: normal
      keys: "g g"
      action: cursor.up
`)

	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input.PendingCapacity != 3 {
		t.Errorf("PendingCapacity = %d, want 3", cfg.Input.PendingCapacity)
	}
	if len(cfg.Keymap.Bindings) != 1 || cfg.Keymap.Bindings[0].Keys != "g g" {
		t.Errorf("Keymap.Bindings = %+v", cfg.Keymap.Bindings)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[input]\nchord_timeout = \"2s\"\npending_capacity = 4\n")

	t.Setenv("KESTREL_CHORD_TIMEOUT", "300ms")
	t.Setenv("KESTREL_INPUT_PENDING_CAPACITY", "6")
	t.Setenv("KESTREL_LOG_LEVEL", "warn")
	t.Setenv("KESTREL_HOME", "/somewhere")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input.ChordTimeout.Std() != 300*time.Millisecond {
		t.Errorf("ChordTimeout = %v, want 300ms", cfg.Input.ChordTimeout.Std())
	}
	if cfg.Input.PendingCapacity != 6 {
		t.Errorf("PendingCapacity = %d, want 6", cfg.Input.PendingCapacity)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_Includes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.toml", "[input]\npending_capacity = 2\n[log]\nlevel = \"error\"\n")
	path := writeFile(t, dir, "config.toml", "\"@include\" = [\"base.toml\"]\n[input]\npending_capacity = 5\n")

	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input.PendingCapacity != 5 || cfg.Log.Level != "error" {
		t.Errorf("Input = %+v, Log = %+v", cfg.Input, cfg.Log)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[input]\nchord_timout = \"1s\"\n")

	_, err := Load(path, WithEnvPrefix(""))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q", pe.Path)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[input]
chord_timeout = "0s"
pending_capacity = 100
initial_mode = "replace"

[log]
level = "loud"

[[keymap.bind]]
mode = "normal"
keys = "<Nope>"
action = "cursor.up"

[theme]
pending_fg = "yellow"
`)

	_, err := Load(path, WithEnvPrefix(""))
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Load() error = %v, want ErrValidationFailed", err)
	}
	for _, setting := range []string{
		"input.chord_timeout",
		"input.pending_capacity",
		"input.initial_mode",
		"log.level",
		"keymap.bind[0]",
		"theme",
	} {
		if !strings.Contains(err.Error(), setting+":") {
			t.Errorf("error %q does not mention %s", err, setting)
		}
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[input]\nchord_timeout = \"soon\"\n")
	if _, err := Load(path, WithEnvPrefix("")); err == nil {
		t.Error("Load() should reject an unparsable duration")
	}
}

func TestPatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keys.yaml", "bind:\n  - mode: normal\n    keys: \"g g\"\n    action: cursor.up\n")
	path := writeFile(t, dir, "config.toml", `
[keymap]
files = ["keys.yaml"]

[[keymap.bind]]
mode = "normal"
keys = "g g"
`)

	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	patches, err := cfg.Patches()
	if err != nil {
		t.Fatalf("Patches() error = %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("Patches() = %v, want 2", patches)
	}
	if patches[0].Action == nil || patches[1].Action != nil {
		t.Errorf("Patches() = %v, want file bind then inline unbind", patches)
	}

	cfg.Keymap.Files = []string{filepath.Join(dir, "gone.toml")}
	if _, err := cfg.Patches(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Patches() with missing file = %v, want os.ErrNotExist", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, base, want string
	}{
		{"~/k.lua", "/etc/kestrel", filepath.Join(home, "k.lua")},
		{"k.lua", "/etc/kestrel", "/etc/kestrel/k.lua"},
		{"/abs/k.lua", "/etc/kestrel", "/abs/k.lua"},
		{"k.lua", "", "k.lua"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in, tt.base); got != tt.want {
			t.Errorf("expandPath(%q, %q) = %q, want %q", tt.in, tt.base, got, tt.want)
		}
	}
}

func TestThemeParse(t *testing.T) {
	th, err := DefaultTheme().Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := th.StatusBG.Hex(); got != "#3a3a5c" {
		t.Errorf("StatusBG = %s", got)
	}
	if th.ModeBG == th.StatusBG || th.ModeBG == th.PendingFG {
		t.Errorf("ModeBG = %s, want a blend", th.ModeBG.Hex())
	}
	if !th.ModeBG.IsValid() {
		t.Errorf("ModeBG = %v is out of gamut", th.ModeBG)
	}

	bad := DefaultTheme()
	bad.StatusFG = "#12"
	if _, err := bad.Parse(); err == nil || !strings.Contains(err.Error(), "status_fg") {
		t.Errorf("Parse() error = %v, want status_fg failure", err)
	}
}
