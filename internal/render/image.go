package render

import (
	"fmt"
	"image"
	"os"

	// Decoders for every recognized picture extension.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageLoader decodes picture files and scales them so that the longer side
// matches MaxSide. A zero MaxSide keeps the native size.
type ImageLoader struct {
	MaxSide int
}

// LoadImage decodes the file at path.
func (l ImageLoader) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if l.MaxSide <= 0 {
		return img, nil
	}
	return ScaleToFit(img, l.MaxSide, l.MaxSide), nil
}

// FitSize returns the largest size with the aspect ratio of (w, h) that fits
// into (maxW, maxH). Images are scaled up as well as down.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	// Compare w/h against maxW/maxH without floating point.
	if w*maxH >= h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

// ScaleToFit returns src scaled to fit into (maxW, maxH), keeping its aspect
// ratio.
func ScaleToFit(src image.Image, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
