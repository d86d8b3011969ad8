package lua

import (
	"github.com/dshills/kestrel/internal/input/keymap"
)

// LoadScript runs the keymap script at path in a fresh sandboxed state and
// returns the patches it recorded.
func LoadScript(path string, opts ...StateOption) ([]keymap.Patch, error) {
	return run(path, opts, func(s *State) error {
		return s.DoFile(path)
	})
}

// LoadScripts runs each script in order and concatenates their patches.
// It stops at the first failing script.
func LoadScripts(paths []string, opts ...StateOption) ([]keymap.Patch, error) {
	var all []keymap.Patch
	for _, path := range paths {
		patches, err := LoadScript(path, opts...)
		if err != nil {
			return nil, err
		}
		all = append(all, patches...)
	}
	return all, nil
}

// RunString runs code as a keymap script named name.
func RunString(name, code string, opts ...StateOption) ([]keymap.Patch, error) {
	return run(name, opts, func(s *State) error {
		return s.DoString(code)
	})
}

func run(name string, opts []StateOption, exec func(*State) error) ([]keymap.Patch, error) {
	s := NewState(opts...)
	defer s.Close()

	keys := NewKeysModule()
	keys.Register(s)

	if err := exec(s); err != nil {
		return nil, &ScriptError{Path: name, Err: err}
	}
	return keys.Patches(), nil
}
