package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const DefaultFramebuffer = "/dev/fb0"

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string
	Logger logging.Logger
	// Debug draws the caption of every picture at the bottom of the screen.
	Debug bool

	fbDev   *fb.Device
	canvas  *image.RGBA
	running atomic.Bool
}

func NewFBRenderer(device string) *FBRenderer {
	if device == "" {
		device = DefaultFramebuffer
	}
	return &FBRenderer{Device: device}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	logger := logging.OrNoop(r.Logger)
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())

	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.running.Store(true)
	return r.Clear()
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// Show draws img scaled to fit between the vertical margins, centred.
func (r *FBRenderer) Show(img image.Image, caption string) error {
	if !r.running.Load() {
		return nil
	}
	r.FillBackground()
	if img != nil {
		area := layout.InsetVertical(r.canvas.Bounds(), CanvasMargin)
		b := img.Bounds()
		dst := layout.Fit(area, b.Dx(), b.Dy())
		xdraw.ApproxBiLinear.Scale(r.canvas, dst, img, b, xdraw.Over, nil)
	}
	if r.Debug && caption != "" {
		drawCaption(r.canvas, caption, CanvasHeight-CanvasMargin/2, Foreground, basicfont.Face7x13)
	}
	return blitToFB(r.fbDev, r.canvas)
}

// Clear fills the screen with the background color.
func (r *FBRenderer) Clear() error {
	if !r.running.Load() {
		return nil
	}
	r.FillBackground()
	return blitToFB(r.fbDev, r.canvas)
}

func (r *FBRenderer) FillBackground() {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) error {
	if dev == nil {
		return nil
	}
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * CanvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * CanvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}

// Helper: horizontally centred text on the given baseline.
func drawCaption(img *image.RGBA, text string, baselineY int, fg color.Color, face font.Face) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: fg},
		Face: face,
	}
	textWidth := drawer.MeasureString(text).Ceil()
	xPos := (img.Bounds().Dx() - textWidth) / 2
	drawer.Dot = fixed.P(xPos, baselineY)
	drawer.DrawString(text)
}
