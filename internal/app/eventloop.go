package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dshills/kestrel/internal/config/watcher"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/backend"
)

// readInput forwards backend events to the poll loop until the backend
// closes.
func (app *Application) readInput() {
	for {
		ev := app.backend.PollEvent()
		switch ev.Type {
		case backend.EventInterrupt, backend.EventNone:
			continue
		}
		app.events.Push(ev)
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// loop owns the resolver, keymaps and document. It wakes on input, on a
// config reload, and when a pending chord expires.
func (app *Application) loop(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	app.draw()
	for {
		var expired <-chan time.Time
		if deadline, ok := app.ac.Deadline(); ok {
			// The chord expires once strictly past its deadline.
			expired = time.After(deadline.Sub(app.clock.Now()) + time.Millisecond)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-app.events.Ready():
		case <-app.reloads.Ready():
		case <-expired:
		}

		if err := app.step(); err != nil {
			return err
		}
	}
}

// step drains the queues once: keys into the resolver, reload requests
// into new keymaps, and resolved actions into the document.
func (app *Application) step() error {
	for {
		ev, ok := app.events.TryPop()
		if !ok {
			break
		}
		switch ev.Type {
		case backend.EventKey:
			app.message = ""
			app.ac.HandleKey(ev.Key)
		case backend.EventClosed:
			app.log.Warn("backend closed")
			return ErrQuit
		}
	}

	if app.ac.CheckTimeout() {
		app.log.Debug("chord timed out")
	}

	if paths := app.reloads.Drain(); len(paths) > 0 {
		app.log.Info("config changed: %s", paths[len(paths)-1])
		app.reload()
	}

	for {
		c, ok := app.ac.Pop()
		if !ok {
			break
		}
		err := app.doc.Apply(c)
		if errors.Is(err, ErrQuit) {
			return app.quit()
		}
		if err != nil {
			app.log.Warn("apply %s: %v", c, err)
		}
	}

	app.draw()
	return nil
}

func (app *Application) quit() error {
	if app.opts.SaveOnQuit && app.doc.Dirty() {
		if err := app.doc.Save(); err != nil {
			return err
		}
		app.log.Info("saved %s", app.doc.Path())
	}
	return ErrQuit
}

// reload rebuilds the keymaps from a fresh config. On failure the current
// keymaps stay in effect and the error is shown in the status line.
func (app *Application) reload() {
	cfg, err := LoadConfig(app.opts.ConfigPath, app.opts.Override, app.opts.ConfigOptions...)
	if err != nil {
		app.reloadFailed(err)
		return
	}
	km, err := BuildKeymaps(app.base, cfg, app.log)
	if err != nil {
		app.reloadFailed(err)
		return
	}
	theme, err := cfg.Theme.Parse()
	if err != nil {
		app.reloadFailed(err)
		return
	}

	app.cfg = cfg
	app.keymaps = km
	app.ac.SetKeymaps(km)
	app.ac.SetTimeout(cfg.Input.ChordTimeout.Std())
	app.renderer.SetTheme(renderer.ThemeFrom(theme))
	if app.watcher != nil {
		app.watchFiles()
	}

	app.message = "config reloaded"
	app.log.Info("config reloaded: %d patches", len(km.Patches()))
}

func (app *Application) reloadFailed(err error) {
	app.message = fmt.Sprintf("config: %v", err)
	app.log.Warn("reload failed: %v", err)
}

func (app *Application) initWatcher() {
	w, err := watcher.New()
	if err != nil {
		app.log.Warn("config watcher disabled: %v", err)
		return
	}
	w.OnChange(func(ev watcher.Event) {
		app.reloads.Push(ev.Path)
	})
	w.OnError(func(err error) {
		app.log.WithComponent("watcher").Warn("%v", err)
	})
	app.watcher = w
	app.watchFiles()
}

// watchFiles adds the config file and every keymap file and script.
// Files already watched are skipped by the watcher.
func (app *Application) watchFiles() {
	var paths []string
	if app.cfg.Path() != "" {
		paths = append(paths, app.cfg.Path())
	}
	paths = append(paths, app.cfg.Keymap.Files...)
	paths = append(paths, app.cfg.Keymap.Scripts...)

	for _, path := range paths {
		if err := app.watcher.Watch(path); err != nil {
			app.log.Warn("watch %s: %v", path, err)
		}
	}
}

func (app *Application) draw() {
	app.renderer.Draw(renderer.Frame{
		Text:    app.doc.Text(),
		Cursor:  app.doc.Cursor(),
		Mode:    app.ac.CurrentMode(),
		Pending: app.ac.Pending(),
		Path:    app.doc.Path(),
		Dirty:   app.doc.Dirty(),
		Message: app.message,
	})
}
