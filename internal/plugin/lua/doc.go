// Package lua runs keymap scripts on gopher-lua.
//
// A script edits the keymap through the global kestrel table:
//
//	kestrel.bind("insert", "j k", "mode.normal")
//	kestrel.unbind("normal", "Z Q")
//	kestrel.map("normal", {
//	    ["g g"] = "cursor.up",
//	    ["<C-d>"] = "cursor.down",
//	})
//
// Each call is recorded as a keymap.Patch; the host applies the patches to
// its keymap.Patched after the config file's own bindings. Scripts run in
// a sandbox with only the base, table, string and math libraries, no way
// to load further code, and a per-script execution timeout.
//
//	patches, err := lua.LoadScripts(cfg.Keymap.Scripts,
//	    lua.WithPrinter(func(s string) { logger.Info(s) }))
package lua
