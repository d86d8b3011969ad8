package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ThemeConfig holds the status line colors as hex strings.
type ThemeConfig struct {
	StatusFG  string `toml:"status_fg" yaml:"status_fg"`
	StatusBG  string `toml:"status_bg" yaml:"status_bg"`
	PendingFG string `toml:"pending_fg" yaml:"pending_fg"`
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		StatusFG:  "#e0e0e0",
		StatusBG:  "#3a3a5c",
		PendingFG: "#f0c674",
	}
}

// Theme is a parsed ThemeConfig.
type Theme struct {
	StatusFG  colorful.Color
	StatusBG  colorful.Color
	PendingFG colorful.Color

	// ModeBG highlights the mode name: the status background blended a
	// third of the way toward the pending color.
	ModeBG colorful.Color
}

// Parse converts the hex strings into colors.
func (t ThemeConfig) Parse() (Theme, error) {
	var th Theme
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"status_fg", t.StatusFG, &th.StatusFG},
		{"status_bg", t.StatusBG, &th.StatusBG},
		{"pending_fg", t.PendingFG, &th.PendingFG},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %q is not a #rrggbb color", f.name, f.hex)
		}
		*f.dst = c
	}
	th.ModeBG = th.StatusBG.BlendLab(th.PendingFG, 1.0/3).Clamped()
	return th, nil
}
