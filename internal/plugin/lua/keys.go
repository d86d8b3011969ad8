package lua

import (
	"cmp"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/input/mode"
)

// ModuleName is the global table scripts use to edit the keymap.
const ModuleName = "kestrel"

// KeysModule records the keymap edits a script makes.
//
//	kestrel.bind("insert", "j k", "mode.normal")
//	kestrel.unbind("normal", "Z Q")
//	kestrel.map("normal", { ["g g"] = "cursor.up", G = "cursor.down" })
//	for _, m in ipairs(kestrel.modes()) do ... end
type KeysModule struct {
	patches []keymap.Patch
}

// NewKeysModule returns an empty module.
func NewKeysModule() *KeysModule {
	return &KeysModule{}
}

// Register installs the module table into s.
func (m *KeysModule) Register(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"bind":   m.bind,
		"unbind": m.unbind,
		"map":    m.mapTable,
		"modes":  m.modes,
	})
}

// Patches returns the recorded edits in call order.
func (m *KeysModule) Patches() []keymap.Patch {
	return slices.Clone(m.patches)
}

// bind(mode, keys, action)
func (m *KeysModule) bind(L *lua.LState) int {
	b := keymap.Binding{
		Mode:   L.CheckString(1),
		Keys:   L.CheckString(2),
		Action: L.CheckString(3),
	}
	if b.Action == "" {
		L.ArgError(3, "action cannot be empty; use unbind")
		return 0
	}
	m.record(L, b)
	return 0
}

// unbind(mode, keys)
func (m *KeysModule) unbind(L *lua.LState) int {
	m.record(L, keymap.Binding{
		Mode: L.CheckString(1),
		Keys: L.CheckString(2),
	})
	return 0
}

// map(mode, { keys = action, ... }) binds every entry, in key order.
func (m *KeysModule) mapTable(L *lua.LState) int {
	modeName := L.CheckString(1)
	tbl := L.CheckTable(2)

	var bindings []keymap.Binding
	tbl.ForEach(func(k, v lua.LValue) {
		keys, kok := k.(lua.LString)
		action, vok := v.(lua.LString)
		if !kok || !vok {
			L.ArgError(2, "entries must map key strings to action strings")
			return
		}
		bindings = append(bindings, keymap.Binding{Mode: modeName, Keys: string(keys), Action: string(action)})
	})
	slices.SortFunc(bindings, func(a, b keymap.Binding) int {
		return cmp.Compare(a.Keys, b.Keys)
	})

	for _, b := range bindings {
		m.record(L, b)
	}
	return 0
}

// modes() -> { "normal", "insert", ... }
func (m *KeysModule) modes(L *lua.LState) int {
	tbl := L.NewTable()
	for _, md := range mode.All() {
		tbl.Append(lua.LString(md.String()))
	}
	L.Push(tbl)
	return 1
}

func (m *KeysModule) record(L *lua.LState, b keymap.Binding) {
	p, err := b.Patch()
	if err != nil {
		L.RaiseError("%v", err)
		return
	}
	m.patches = append(m.patches, p)
}
