package app

import (
	"context"
	"time"

	"github.com/rook-computer/kbplay/internal/catalog"
	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/keys"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/render"
	"github.com/rook-computer/kbplay/internal/sequence"
	"github.com/rook-computer/kbplay/internal/state"
)

// CatalogOptions configures BuildCatalog.
type CatalogOptions struct {
	Root string
	// Font is tried before the default keycap fonts.
	Font string
	// Cache decodes every picture up front.
	Cache bool
}

// BuildCatalog indexes the media root for the default key table, drawing
// missing keycaps with the located font.
func BuildCatalog(ctx context.Context, opts CatalogOptions, logger logging.Logger) (*catalog.Catalog, error) {
	b := &catalog.Builder{
		Root:    opts.Root,
		Keys:    keys.Default(),
		Keycaps: render.NewKeycapRenderer(render.NewFontLocator(opts.Font, logger)),
		Logger:  logger,
	}
	if opts.Cache {
		b.Images = render.ImageLoader{MaxSide: render.CanvasHeight}
	}
	return b.Build(ctx)
}

// Options are the timing and drawing settings of a playground.
type Options struct {
	MinDisplay time.Duration
	Hysteresis time.Duration
	Pairing    sequence.Pairing
	QuitPolicy QuitPolicy
}

// Assemble wires the sequencer and state machine over cat and returns an
// App reading from source.
func Assemble(cat *catalog.Catalog, presenter state.Presenter, source input.Source, opts Options, logger logging.Logger) *App {
	logger = logging.OrNoop(logger)
	machine := state.NewMachine(keys.Default(), sequence.New(cat, opts.Pairing, nil), presenter)
	machine.MinDisplay = opts.MinDisplay
	machine.Hysteresis = opts.Hysteresis
	machine.Logger = logger

	a := New(machine, source)
	a.Logger = logger
	a.QuitPolicy = opts.QuitPolicy
	return a
}
