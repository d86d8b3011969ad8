package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts a Lua state to code that cannot reach the host.
type Sandbox struct {
	L *lua.LState

	printer func(string)
}

// NewSandbox creates a sandbox for L. Print output goes to printer, or is
// discarded when printer is nil.
func NewSandbox(L *lua.LState, printer func(string)) *Sandbox {
	return &Sandbox{L: L, printer: printer}
}

// Install removes the loaders that could read code from disk and replaces
// print.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
}

func (s *Sandbox) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	if s.printer != nil {
		s.printer(strings.Join(parts, "\t"))
	}
	return 0
}
