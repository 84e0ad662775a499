// Command simulator runs the keyboard playground in a terminal: pictures
// are drawn as colored half blocks and key releases are inferred from the
// terminal's key repeat.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/rook-computer/kbplay/internal/app"
	"github.com/rook-computer/kbplay/internal/audio"
	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/render"
	"github.com/rook-computer/kbplay/internal/sequence"
	"github.com/rook-computer/kbplay/internal/state"
)

type options struct {
	root       string
	scenario   string
	logPath    string
	duration   int
	hysteresis int
	hold       int
	pairing    string
	quitPolicy string
	sound      bool
	debug      bool
}

func main() {
	if err := newCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	simRoot := filepath.Join(os.TempDir(), "kbplay-sim")
	var o options
	cmd := &cobra.Command{
		Use:          "simulator",
		Short:        "Run kbplay in a terminal. Escape or Ctrl+C quits.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.root, "root", filepath.Join(simRoot, "media"), "simulated media root")
	f.StringVar(&o.scenario, "scenario", "demo", "media scenario: demo | empty")
	f.StringVar(&o.logPath, "log", filepath.Join(simRoot, "simulator.log"), "log file; the terminal is used for drawing")
	f.IntVar(&o.duration, "duration", int(state.DefaultMinDisplay/time.Millisecond), "minimum display time in milliseconds")
	f.IntVar(&o.hysteresis, "hysteresis", int(state.DefaultHysteresis/time.Millisecond), "extra milliseconds before the same key is accepted again")
	f.IntVar(&o.hold, "hold", int(input.DefaultHold/time.Millisecond), "milliseconds without key repeat after which a key counts as released")
	f.StringVar(&o.pairing, "pairing", sequence.PairWithinTopic.String(), "draw pool: topic | cross")
	f.StringVar(&o.quitPolicy, "quit-policy", app.QuitImmediate.String(), "immediate | after-display")
	f.BoolVar(&o.sound, "sound", true, "play sounds through the speaker")
	f.BoolVar(&o.debug, "debug", false, "debug logging")
	return cmd
}

func run(parent context.Context, o options) error {
	pairing, err := sequence.ParsePairing(o.pairing)
	if err != nil {
		return err
	}
	quit, err := app.ParseQuitPolicy(o.quitPolicy)
	if err != nil {
		return err
	}
	if o.duration < 0 || o.hysteresis < 0 || o.hold <= 0 {
		return fmt.Errorf("durations must not be negative and --hold must be positive")
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := filepath.Clean(o.root)
	if err := applyScenario(root, o.scenario); err != nil {
		return fmt.Errorf("scenario init: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(o.logPath), 0o755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, o.debug)

	cat, err := app.BuildCatalog(ctx, app.CatalogOptions{Root: root}, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := render.NewTermRenderer(screen)
	if err := renderer.Start(ctx); err != nil {
		return err
	}
	defer renderer.Stop()

	var sink audio.Sink = audio.NoopSink{}
	if o.sound {
		player := audio.NewPlayer(1, logger)
		if err := player.Init(); err != nil {
			logger.Errorf("audio", "no sound: %v", err)
		} else {
			defer player.Close()
			sink = player
		}
	}

	source := input.NewTerminalSource(screen)
	source.Hold = time.Duration(o.hold) * time.Millisecond

	a := app.Assemble(cat, app.NewPresenter(renderer, sink, logger), source, app.Options{
		MinDisplay: time.Duration(o.duration) * time.Millisecond,
		Hysteresis: time.Duration(o.hysteresis) * time.Millisecond,
		Pairing:    pairing,
		QuitPolicy: quit,
	}, logger)
	err = a.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
