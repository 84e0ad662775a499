package render

import (
	"context"
	"image"
)

// Renderer shows one picture at a time. Implementations draw to the Linux
// framebuffer or to a terminal.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	// Show replaces the current picture. img may be nil, in which case only
	// the caption (if the renderer supports one) is drawn.
	Show(img image.Image, caption string) error
	Clear() error
}

// NoopRenderer discards everything; used in testing mode.
type NoopRenderer struct{}

func (NoopRenderer) Start(ctx context.Context) error            { return nil }
func (NoopRenderer) Stop() error                                { return nil }
func (NoopRenderer) Show(img image.Image, caption string) error { return nil }
func (NoopRenderer) Clear() error                               { return nil }
