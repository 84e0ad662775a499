package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// KeycapRenderer draws a key's label onto a square canvas, the default
// picture of every key.
type KeycapRenderer struct {
	Fonts FontProvider
	// Size is the canvas edge and the font size in pixels.
	Size int
	// YBias shifts the glyph up from the vertical centre.
	YBias int

	face font.Face
}

func NewKeycapRenderer(fonts FontProvider) *KeycapRenderer {
	return &KeycapRenderer{Fonts: fonts, Size: KeycapSize, YBias: KeycapYBias}
}

// Render returns the keycap image for label.
func (k *KeycapRenderer) Render(label string) (*image.RGBA, error) {
	if k.face == nil {
		if k.Fonts == nil {
			return nil, ErrFontNotFound
		}
		face, _, err := k.Fonts.Face(float64(k.Size))
		if err != nil {
			return nil, err
		}
		k.face = face
	}

	canvas := image.NewRGBA(image.Rect(0, 0, k.Size, k.Size))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	bounds, _ := font.BoundString(k.face, label)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	left := (k.Size - width) / 2
	top := (k.Size-height)/2 - k.YBias

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(Foreground),
		Face: k.face,
	}
	// The dot is the glyph origin; bounds are relative to it.
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(left) - bounds.Min.X,
		Y: fixed.I(top) - bounds.Min.Y,
	}
	drawer.DrawString(label)
	return canvas, nil
}

// WriteKeycap renders label and stores it as a PNG at path. An existing
// file is left untouched.
func (k *KeycapRenderer) WriteKeycap(path, label string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	img, err := k.Render(label)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".keycap-*.png")
	if err != nil {
		return fmt.Errorf("create keycap temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode keycap %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
