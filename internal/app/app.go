// Package app runs the keyboard playground: it feeds input events to the
// state machine and keeps the deferred release timer.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/state"
)

// QuitPolicy decides what a quit request does while a picture is shown.
type QuitPolicy int

const (
	// QuitImmediate ends at once.
	QuitImmediate QuitPolicy = iota
	// QuitAfterDisplay lets the active presentation reach its minimum
	// display time first.
	QuitAfterDisplay
)

func ParseQuitPolicy(s string) (QuitPolicy, error) {
	switch s {
	case "", "immediate":
		return QuitImmediate, nil
	case "after-display":
		return QuitAfterDisplay, nil
	}
	return 0, fmt.Errorf("unknown quit policy %q (want immediate or after-display)", s)
}

func (q QuitPolicy) String() string {
	if q == QuitAfterDisplay {
		return "after-display"
	}
	return "immediate"
}

type App struct {
	Machine    *state.Machine
	Input      input.Source
	Logger     logging.Logger
	QuitPolicy QuitPolicy

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(machine *state.Machine, source input.Source) *App {
	return &App{Machine: machine, Input: source, Logger: logging.NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Only the first call has an effect.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run processes events until a quit event, Exit, the end of the event
// stream or the end of ctx. It returns ctx.Err() when the context ended and
// the error passed to Exit otherwise.
func (app *App) Run(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.Logger = logging.OrNoop(app.Logger)
	if err := app.Input.Start(ctx); err != nil {
		app.Logger.Errorf("app", "input start error: %v", err)
		return err
	}
	defer app.Input.Stop()
	app.Logger.Infof("app", "ready, quit policy %s", app.QuitPolicy)

	release := time.NewTimer(time.Hour)
	release.Stop()
	defer release.Stop()
	var releaseC <-chan time.Time

	events := app.Input.Events()
	for {
		select {
		case <-ctx.Done():
			return app.finish(ctx.Err())
		case err := <-app.exitCh:
			return app.finish(err)
		case now := <-releaseC:
			releaseC = nil
			if err := app.Machine.Tick(now); err != nil {
				app.Logger.Errorf("presenter", "release: %v", err)
			}
		case ev, ok := <-events:
			if !ok {
				app.Logger.Infof("app", "input closed")
				return app.finish(nil)
			}
			if ev.Type == input.Quit || ev.IsQuitChord() {
				app.Logger.Infof("app", "quit requested")
				return app.finish(nil)
			}
			deadline := app.handle(ev)
			if !deadline.IsZero() {
				release.Reset(time.Until(deadline))
				releaseC = release.C
			}
		}
	}
}

// handle feeds one key event to the machine and returns the deferred
// release deadline, if the event produced one.
func (app *App) handle(ev input.Event) time.Time {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	switch ev.Type {
	case input.KeyDown:
		app.Logger.Debugf("input", "down %q mods=%b code=%d", ev.Rune, ev.Mods, ev.Code)
		if _, err := app.Machine.KeyDown(ev, ev.Time); err != nil {
			app.Logger.Errorf("presenter", "show: %v", err)
		}
	case input.KeyUp:
		app.Logger.Debugf("input", "up %q", ev.Rune)
		deadline, err := app.Machine.KeyUp(ev, ev.Time)
		if err != nil {
			app.Logger.Errorf("presenter", "release: %v", err)
		}
		return deadline
	}
	return time.Time{}
}

func (app *App) finish(reason error) error {
	if app.QuitPolicy == QuitAfterDisplay {
		if end, ok := app.Machine.DisplayEnds(); ok {
			if d := time.Until(end); d > 0 {
				app.Logger.Infof("app", "waiting %v for the active picture", d.Round(time.Millisecond))
				time.Sleep(d)
			}
		}
	}
	if err := app.Machine.Shutdown(); err != nil {
		app.Logger.Errorf("presenter", "shutdown: %v", err)
	}
	return reason
}
