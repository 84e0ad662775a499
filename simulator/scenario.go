package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/rook-computer/kbplay/internal/audio"
)

// demoFile is one seeded media file. Pictures are filled with Color; sounds
// are sine tones of Freq hertz.
type demoFile struct {
	Path  string
	Color color.RGBA
	Freq  float64
}

var demoMedia = []demoFile{
	{Path: "j/j.wav", Freq: 440},
	{Path: "j/jason.png", Color: color.RGBA{R: 0x2e, G: 0x86, B: 0xde, A: 0xff}},
	{Path: "j/janet.wav", Freq: 660},
	{Path: "a/airplane.png", Color: color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}},
	{Path: "a/airplane:2.png", Color: color.RGBA{R: 0xb0, G: 0xc4, B: 0xde, A: 0xff}},
	{Path: "a/airplane.wav", Freq: 330},
	{Path: "a/apple.png", Color: color.RGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}},
	{Path: "s/sun.png", Color: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
	{Path: "s/s.wav", Freq: 523.25},
	{Path: "spacebar/spacebar.wav", Freq: 196},
}

func applyScenario(root, scenario string) error {
	switch scenario {
	case "empty":
		return os.MkdirAll(root, 0o755)
	case "demo", "":
		return seedDemo(root)
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
}

// seedDemo writes the demo media below root, keeping files that exist.
func seedDemo(root string) error {
	for _, f := range demoMedia {
		path := filepath.Join(root, filepath.FromSlash(f.Path))
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		var err error
		if f.Freq > 0 {
			err = audio.WriteTone(path, f.Freq, 600*time.Millisecond)
		} else {
			err = writeSwatch(path, f.Color)
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", f.Path, err)
		}
	}
	return nil
}

// writeSwatch writes a square picture of c with a lighter inner square.
func writeSwatch(path string, c color.RGBA) error {
	img := image.NewRGBA(image.Rect(0, 0, 320, 320))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	light := color.RGBA{R: c.R/2 + 0x80, G: c.G/2 + 0x80, B: c.B/2 + 0x80, A: 0xff}
	draw.Draw(img, image.Rect(80, 80, 240, 240), &image.Uniform{C: light}, image.Point{}, draw.Src)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
