// Package app provides the main application structure and coordination
// for the kestrel editor. It wires the configuration, keymaps, chord
// resolver, document and terminal together and runs the poll loop.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/config/watcher"
	"github.com/dshills/kestrel/internal/input"
	"github.com/dshills/kestrel/internal/input/keymap"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/queue"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/backend"
)

// Application is the central coordinator for the editor.
// Everything but the event and reload queues is owned by the poll loop
// while Run is active.
type Application struct {
	opts Options
	cfg  *config.Config

	log    *Logger
	ownLog bool

	base    *keymap.Keymaps
	keymaps *keymap.Patched
	ac      *input.ActionContext
	clock   input.Clock

	doc      *Document
	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *watcher.Watcher

	events  queue.FIFO[backend.Event]
	reloads queue.FIFO[string]

	message string
	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses only the defaults
	// and the environment.
	ConfigPath string

	// ConfigOptions are passed to config.Load.
	ConfigOptions []config.Option

	// Override applies command-line flags after every config load.
	Override func(*config.Config)

	// File is opened on startup. Empty starts a scratch document.
	File string

	// Backend draws the editor. Nil uses the tcell terminal.
	Backend backend.Backend

	// Logger overrides the logger configured by [log].
	Logger *Logger

	// Clock is the chord timeout time source (default: SystemClock).
	Clock input.Clock

	// Watch reloads keymaps when the config, keymap or script files change.
	Watch bool

	// SaveOnQuit writes a modified document to its path before exiting.
	SaveOnQuit bool
}

// New loads the configuration and builds every component. It does not
// touch the terminal; Run does.
func New(opts Options) (*Application, error) {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Override, opts.ConfigOptions...)
	if err != nil {
		return nil, err
	}

	app := &Application{opts: opts, cfg: cfg, log: opts.Logger, clock: opts.Clock}
	if app.clock == nil {
		app.clock = input.SystemClock{}
	}
	if app.log == nil {
		if app.log, err = NewLoggerFromConfig(cfg.Log); err != nil {
			return nil, err
		}
		app.ownLog = true
	}

	if err := app.init(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *Application) init() error {
	var err error

	app.base = keymap.Default()
	if app.keymaps, err = BuildKeymaps(app.base, app.cfg, app.log); err != nil {
		return err
	}
	app.ac = input.NewActionContext(app.keymaps, input.Config{
		InitialMode:     app.cfg.Mode(),
		ChordTimeout:    app.cfg.Input.ChordTimeout.Std(),
		PendingCapacity: app.cfg.Input.PendingCapacity,
		Clock:           app.clock,
		Logger:          app.log.WithComponent("input"),
	})

	if app.opts.File == "" {
		app.doc = NewDocument()
	} else if app.doc, err = OpenDocument(app.opts.File); err != nil {
		return err
	}
	app.log = app.log.WithField("doc", app.doc.ID())

	theme, err := app.cfg.Theme.Parse()
	if err != nil {
		return NewComponentError("config", "theme", err)
	}

	app.backend = app.opts.Backend
	if app.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return NewComponentError("backend", "create", err)
		}
		app.backend = term
	}
	app.renderer = renderer.New(app.backend, renderer.ThemeFrom(theme), renderer.DefaultOptions())

	if app.opts.Watch {
		app.initWatcher()
	}
	return nil
}

// Config returns the configuration currently in effect.
func (app *Application) Config() *config.Config { return app.cfg }

// Document returns the open document.
func (app *Application) Document() *Document { return app.doc }

// Keymaps returns the effective keymaps.
func (app *Application) Keymaps() *keymap.Keymaps { return app.ac.Keymaps() }

// Mode returns the resolver's mode once queued actions apply.
func (app *Application) Mode() mode.Mode { return app.ac.CurrentMode() }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }

// Run initializes the backend and processes input until a quit action,
// the backend closing, or ctx being cancelled. A normal exit returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer app.backend.Shutdown()

	app.log.Info("started: %s in %s mode", app.doc.Name(), app.ac.Mode())

	// PollEvent cannot be cancelled; the reader exits when Shutdown closes
	// the backend.
	go app.readInput()

	g, ctx := errgroup.WithContext(ctx)
	if app.watcher != nil {
		g.Go(func() error { return app.watcher.Start(ctx) })
	}
	g.Go(func() error { return app.loop(ctx) })

	err := g.Wait()
	app.logMetrics()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		app.log.Info("exiting")
		return nil
	}
	app.log.Error("stopped: %v", err)
	return err
}

// Close releases the document, the watcher and an owned log file.
func (app *Application) Close() error {
	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
		app.watcher = nil
	}
	if app.doc != nil {
		app.doc.Close()
		app.doc = nil
	}
	if app.ownLog && app.log != nil {
		errs = append(errs, app.log.Close())
	}
	return errors.Join(errs...)
}

// slowKey is the key latency above which input is reported unhealthy.
const slowKey = 50 * time.Millisecond

func (app *Application) logMetrics() {
	log := app.log.WithComponent("input")
	snap := app.ac.Metrics().Snapshot()
	log.Debug(
		"keys=%d actions=%d inserts=%d dropped=%d overflows=%d timeouts=%d unbound=%d p99=%s",
		snap.KeysTotal, snap.ActionsTotal, snap.InsertsTotal, snap.DroppedKeys,
		snap.Overflows, snap.ChordTimeouts, snap.Unbound, snap.P99KeyLatency)
	if h := app.ac.Metrics().HealthCheck(slowKey); !h.Healthy {
		log.Warn("%s: overflows=%d peak=%s", h.Message, h.Overflows, h.PeakLatency)
	}

	pushed, popped := app.events.Stats()
	log.Debug("events pushed=%d popped=%d", pushed, popped)
}
