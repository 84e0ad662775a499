package app

import (
	"errors"
	"fmt"
	"image"

	"github.com/rook-computer/kbplay/internal/audio"
	"github.com/rook-computer/kbplay/internal/catalog"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/render"
)

// ImageLoader decodes a picture file.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// Presenter shows the picture on a Renderer and plays the sound on a Sink.
// A side that fails to load is logged and left out; the other side still
// plays.
type Presenter struct {
	Renderer render.Renderer
	Sound    audio.Sink
	Images   ImageLoader
	Logger   logging.Logger
}

func NewPresenter(renderer render.Renderer, sound audio.Sink, logger logging.Logger) *Presenter {
	return &Presenter{
		Renderer: renderer,
		Sound:    sound,
		Images:   render.ImageLoader{MaxSide: render.CanvasHeight},
		Logger:   logging.OrNoop(logger),
	}
}

func (p *Presenter) Show(img, snd *catalog.Asset) error {
	var errs []error
	var (
		pic     image.Image
		caption string
	)
	if img != nil {
		caption = img.Name()
		pic = img.Image
		if pic == nil {
			loaded, err := p.Images.LoadImage(img.Path)
			if err != nil {
				p.Logger.Errorf("presenter", "image %s: %v", img.Path, err)
				errs = append(errs, fmt.Errorf("image: %w", err))
			} else {
				pic = loaded
			}
		}
	}
	if snd != nil && caption == "" {
		caption = snd.Name()
	}
	if err := p.Renderer.Show(pic, caption); err != nil {
		p.Logger.Errorf("presenter", "show %q: %v", caption, err)
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if snd != nil {
		if err := p.Sound.Play(snd.Path); err != nil {
			p.Logger.Errorf("presenter", "sound %s: %v", snd.Path, err)
			errs = append(errs, fmt.Errorf("sound: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (p *Presenter) Clear() error { return p.Renderer.Clear() }

func (p *Presenter) StopSound() error { return p.Sound.StopSound() }
