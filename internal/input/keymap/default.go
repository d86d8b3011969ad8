package keymap

import "github.com/dshills/kestrel/internal/input/mode"

// DefaultBindings returns the built-in bindings in textual form.
func DefaultBindings() []Binding {
	var out []Binding
	out = append(out, defaultNormal()...)
	out = append(out, defaultInsert()...)
	out = append(out, defaultSelect()...)
	out = append(out, defaultCommand()...)
	return out
}

// Default returns the built-in keymaps.
func Default() *Keymaps {
	km := New()
	patches, err := ParseBindings(DefaultBindings())
	if err != nil {
		panic("keymap: invalid default binding: " + err.Error())
	}
	for _, p := range patches {
		km.Bind(p.Mode, p.Sequence, *p.Action)
	}
	return km
}

func movement(m mode.Mode) []Binding {
	name := m.String()
	return []Binding{
		{Mode: name, Keys: "h", Action: "cursor.left", Description: "Move left"},
		{Mode: name, Keys: "j", Action: "cursor.down", Description: "Move down"},
		{Mode: name, Keys: "k", Action: "cursor.up", Description: "Move up"},
		{Mode: name, Keys: "l", Action: "cursor.right", Description: "Move right"},
		{Mode: name, Keys: "<Left>", Action: "cursor.left", Description: "Move left"},
		{Mode: name, Keys: "<Down>", Action: "cursor.down", Description: "Move down"},
		{Mode: name, Keys: "<Up>", Action: "cursor.up", Description: "Move up"},
		{Mode: name, Keys: "<Right>", Action: "cursor.right", Description: "Move right"},
	}
}

func defaultNormal() []Binding {
	name := mode.Normal.String()
	return append(movement(mode.Normal), []Binding{
		{Mode: name, Keys: "g g", Action: "cursor.up", Description: "Move up"},
		{Mode: name, Keys: "i", Action: "mode.insert", Description: "Enter insert mode"},
		{Mode: name, Keys: "v", Action: "mode.select", Description: "Enter select mode"},
		{Mode: name, Keys: ":", Action: "mode.command", Description: "Enter command mode"},
		{Mode: name, Keys: "x", Action: "edit.delete", Description: "Delete character"},
		{Mode: name, Keys: "X", Action: "edit.backspace", Description: "Delete previous character"},
		{Mode: name, Keys: "Z Z", Action: "editor.quit", Description: "Quit"},
		{Mode: name, Keys: "Z Q", Action: "editor.quit", Description: "Quit"},
		{Mode: name, Keys: "<C-q>", Action: "editor.quit", Description: "Quit"},
	}...)
}

func defaultInsert() []Binding {
	name := mode.Insert.String()
	return []Binding{
		{Mode: name, Keys: "<Left>", Action: "cursor.left", Description: "Move left"},
		{Mode: name, Keys: "<Down>", Action: "cursor.down", Description: "Move down"},
		{Mode: name, Keys: "<Up>", Action: "cursor.up", Description: "Move up"},
		{Mode: name, Keys: "<Right>", Action: "cursor.right", Description: "Move right"},
		{Mode: name, Keys: "<BS>", Action: "edit.backspace", Description: "Delete previous character"},
		{Mode: name, Keys: "<Del>", Action: "edit.delete", Description: "Delete character"},
		{Mode: name, Keys: "<Tab>", Action: "edit.tab", Description: "Insert tab"},
		{Mode: name, Keys: "<Esc>", Action: "mode.normal", Description: "Leave insert mode"},
		{Mode: name, Keys: "j k", Action: "mode.normal", Description: "Leave insert mode"},
		{Mode: name, Keys: "<C-q>", Action: "editor.quit", Description: "Quit"},
	}
}

func defaultSelect() []Binding {
	name := mode.Select.String()
	return append(movement(mode.Select), []Binding{
		{Mode: name, Keys: "<Esc>", Action: "mode.normal", Description: "Leave select mode"},
		{Mode: name, Keys: "x", Action: "edit.delete", Description: "Delete character"},
	}...)
}

func defaultCommand() []Binding {
	name := mode.Command.String()
	return []Binding{
		{Mode: name, Keys: "<Esc>", Action: "mode.normal", Description: "Leave command mode"},
		{Mode: name, Keys: "<CR>", Action: "mode.normal", Description: "Leave command mode"},
		{Mode: name, Keys: "q", Action: "editor.quit", Description: "Quit"},
		{Mode: name, Keys: "<BS>", Action: "edit.backspace", Description: "Delete previous character"},
	}
}
