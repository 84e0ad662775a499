package render

import (
	"context"
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalfBlock lets one terminal cell carry two vertically stacked
// pixels: the foreground paints the top one, the background the bottom.
const upperHalfBlock = '▀'

// TermRenderer draws pictures as half-block art into a tcell screen. The
// screen is owned by the caller; Start and Stop do not initialize or
// finalize it.
type TermRenderer struct {
	Screen tcell.Screen
}

func NewTermRenderer(screen tcell.Screen) *TermRenderer {
	return &TermRenderer{Screen: screen}
}

func (r *TermRenderer) Start(ctx context.Context) error { return r.Clear() }
func (r *TermRenderer) Stop() error                     { return nil }

// Show draws img scaled into every row but the last, which holds the
// caption.
func (r *TermRenderer) Show(img image.Image, caption string) error {
	if r.Screen == nil {
		return nil
	}
	r.Screen.Clear()
	cols, rows := r.Screen.Size()
	if img != nil && cols > 0 && rows > 1 {
		scaled := ScaleToFit(img, cols, 2*(rows-1))
		b := scaled.Bounds()
		offX := (cols - b.Dx()) / 2
		offY := (rows - 1 - (b.Dy()+1)/2) / 2
		for y := 0; y < b.Dy(); y += 2 {
			for x := 0; x < b.Dx(); x++ {
				top := cellColor(scaled, x, y)
				bottom := tcell.ColorBlack
				if y+1 < b.Dy() {
					bottom = cellColor(scaled, x, y+1)
				}
				style := tcell.StyleDefault.Foreground(top).Background(bottom)
				r.Screen.SetContent(offX+x, offY+y/2, upperHalfBlock, nil, style)
			}
		}
	}
	r.drawCaption(caption, cols, rows-1)
	r.Screen.Show()
	return nil
}

func (r *TermRenderer) Clear() error {
	if r.Screen == nil {
		return nil
	}
	r.Screen.Clear()
	r.Screen.Show()
	return nil
}

func (r *TermRenderer) drawCaption(caption string, cols, row int) {
	runes := []rune(caption)
	x := (cols - len(runes)) / 2
	if x < 0 {
		x = 0
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, c := range runes {
		if x+i >= cols {
			break
		}
		r.Screen.SetContent(x+i, row, c, nil, style)
	}
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
