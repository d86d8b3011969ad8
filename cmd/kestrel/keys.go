package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/kestrel/internal/app"
	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/input/mode"
)

func newKeysCmd(f *rootFlags) *cobra.Command {
	var modeName, format string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Long: `Print every binding after the config file, keymap files and scripts
are applied.

The table format lists mode, keys and action. The toml, yaml and json
formats write a keymap file that can be listed under [keymap] files.

Examples:
  kestrel keys
  kestrel keys --mode normal
  kestrel keys --format yaml > keys.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(f.configPath, f.override())
			if err != nil {
				return err
			}
			km, err := app.BuildKeymaps(keymap.Default(), cfg, app.NullLogger)
			if err != nil {
				return err
			}

			bindings := keymap.Bindings(km.Keymaps())
			if modeName != "" {
				m, err := mode.Parse(modeName)
				if err != nil {
					return err
				}
				bindings = filterMode(bindings, m)
			}

			w := cmd.OutOrStdout()
			if format == "table" {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MODE\tKEYS\tACTION")
				for _, b := range bindings {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Mode, b.Keys, b.Action)
				}
				return tw.Flush()
			}
			return keymap.Encode(w, keymap.Format(format), bindings)
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "only list this mode")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "table, toml, yaml or json")
	return cmd
}

func filterMode(bindings []keymap.Binding, m mode.Mode) []keymap.Binding {
	var out []keymap.Binding
	for _, b := range bindings {
		if b.Mode == m.String() {
			out = append(out, b)
		}
	}
	return out
}
