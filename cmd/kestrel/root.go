package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/kestrel/internal/app"
	"github.com/dshills/kestrel/internal/config"
)

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	configPath  string
	logLevel    string
	logFile     string
	timeout     time.Duration
	initialMode string
	saveOnQuit  bool
	noWatch     bool
}

// override returns the config hook that applies flags on top of every
// loaded configuration, including live reloads.
func (f *rootFlags) override() func(*config.Config) {
	return func(cfg *config.Config) {
		if f.logLevel != "" {
			cfg.Log.Level = f.logLevel
		}
		if f.logFile != "" {
			cfg.Log.File = f.logFile
		}
		if f.timeout != 0 {
			cfg.Input.ChordTimeout = config.Duration(f.timeout)
		}
		if f.initialMode != "" {
			cfg.Input.InitialMode = f.initialMode
		}
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "kestrel [file]",
		Short: "A modal terminal text editor",
		Long: `kestrel is a modal terminal text editor built on a rope buffer and a
chord-resolving keymap.

Key bindings come from the built-in defaults, then the keymap files, inline
bindings and Lua scripts listed in the config file. Edits to those files are
picked up while the editor runs.

Examples:
  kestrel                      Open a scratch buffer
  kestrel notes.txt            Open or create a file
  kestrel --timeout 300ms      Shorten the chord timeout
  kestrel keys --mode insert   List the insert mode bindings`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, f, args)
		},
	}
	cmd.SetVersionTemplate(versionString() + "\n")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath(), "config file (toml or yaml)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.DurationVar(&f.timeout, "timeout", 0, "chord timeout, e.g. 750ms")

	fl := cmd.Flags()
	fl.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	fl.StringVar(&f.initialMode, "initial-mode", "", "mode to start in")
	fl.BoolVar(&f.saveOnQuit, "save-on-quit", false, "write the file on quit if it changed")
	fl.BoolVar(&f.noWatch, "no-watch", false, "do not reload the config when it changes")

	cmd.AddCommand(newKeysCmd(f), newVersionCmd())
	return cmd
}

func runEditor(cmd *cobra.Command, f *rootFlags, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return app.ErrNoTerminal
	}

	opts := app.Options{
		ConfigPath: f.configPath,
		Override:   f.override(),
		Watch:      !f.noWatch,
		SaveOnQuit: f.saveOnQuit,
	}
	if len(args) == 1 {
		opts.File = args[0]
	}

	editor, err := app.New(opts)
	if err != nil {
		return err
	}
	defer editor.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return editor.Run(ctx)
}
