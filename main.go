package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/kbplay/internal/app"
	"github.com/rook-computer/kbplay/internal/audio"
	"github.com/rook-computer/kbplay/internal/config"
	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/render"
	"github.com/rook-computer/kbplay/internal/system"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has printed the error.
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kbplay",
		Short: "A keyboard playground: every key shows a picture and plays a sound.",
		Long: `kbplay shows a picture and plays a sound for each key pressed, for as
long as the key is held and at least --duration milliseconds. Media lives
under --mediadir, one directory per key; missing keycap pictures are drawn
on first start.

Quit with Meta+q or F4.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         run,
	}
	cmd.Version = version
	config.AddFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	// Best-effort: send stdout/stderr (including panic stack traces) to a
	// file so crashes are diagnosable while the console is in graphics mode.
	if cfg.StdioLog != "" {
		if err := redirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}
	logger := logging.New(os.Stderr, cfg.Debug)
	logger.Infof("main", "kbplay %s starting, media %s", version, cfg.MediaDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := app.BuildCatalog(ctx, app.CatalogOptions{Root: cfg.MediaDir, Font: cfg.Font, Cache: cfg.Cache}, logger)
	if errors.Is(err, render.ErrFontNotFound) {
		return &config.Error{Key: "font", Err: err}
	}
	if err != nil {
		return err
	}

	var (
		renderer render.Renderer = render.NoopRenderer{}
		sink     audio.Sink      = audio.NoopSink{}
	)
	if !cfg.Testing {
		fbr := render.NewFBRenderer(cfg.Framebuffer)
		fbr.Logger = logger
		fbr.Debug = cfg.Debug
		if err := fbr.Start(ctx); err != nil {
			return fmt.Errorf("framebuffer %s: %w", cfg.Framebuffer, err)
		}
		defer fbr.Stop()
		renderer = fbr

		console := system.NewConsole(logger)
		_ = console.Acquire()
		defer console.Release()

		player := audio.NewPlayer(cfg.SoundRepeats, logger)
		if err := player.Init(); err != nil {
			logger.Errorf("audio", "no sound: %v", err)
		} else {
			defer player.Close()
			sink = player
		}
	} else {
		logger.Infof("main", "testing mode: no display, no audio")
	}

	presenter := app.NewPresenter(renderer, sink, logger)
	a := app.Assemble(cat, presenter, input.NewEvdevSource(logger), app.Options{
		MinDisplay: cfg.MinDisplay(),
		Hysteresis: cfg.HysteresisWindow(),
		Pairing:    cfg.PairingMode(),
		QuitPolicy: cfg.Quit(),
	}, logger)

	err = a.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Infof("main", "kbplay stopped")
	return err
}
