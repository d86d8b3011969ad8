package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/kestrel/internal/input/action"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/input/mode"
)

// ErrUnsupportedFormat is returned for keymap files whose extension is not
// .toml, .yaml, .yml or .json.
var ErrUnsupportedFormat = errors.New("unsupported keymap format")

// File is the on-disk layout of a keymap file.
//
//	[[bind]]
//	mode = "normal"
//	keys = "g g"
//	action = "cursor.up"
type File struct {
	Bindings []Binding `toml:"bind" yaml:"bind" json:"bind"`
}

// Format identifies a keymap file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadFile reads and parses the keymap file at path.
func LoadFile(path string) ([]Patch, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	patches, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return patches, nil
}

// LoadFiles loads every file in order and concatenates their patches.
func LoadFiles(paths []string) ([]Patch, error) {
	var all []Patch
	for _, path := range paths {
		patches, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, patches...)
	}
	return all, nil
}

// Decode parses a keymap file in the given format.
func Decode(r io.Reader, format Format) ([]Patch, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&f)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return ParseBindings(f.Bindings)
}

// Encode writes bindings in the given format.
func Encode(w io.Writer, format Format, bindings []Binding) error {
	f := File{Bindings: bindings}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Bindings returns the textual form of every binding in km.
func Bindings(km *Keymaps) []Binding {
	var out []Binding
	for _, m := range mode.All() {
		km.Each(m, func(seq key.Sequence, a action.Action) {
			out = append(out, Binding{Mode: m.String(), Keys: seq.String(), Action: a.String()})
		})
	}
	return out
}
