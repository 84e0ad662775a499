// Package audio plays the sound side of a presentation through the system
// speaker.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/rook-computer/kbplay/internal/logging"
)

const SampleRate = beep.SampleRate(44100)

var ErrUnsupported = errors.New("unsupported sound format")

// Sink plays sound files. StopSound silences whatever is playing.
type Sink interface {
	Play(path string) error
	StopSound() error
	Close() error
}

// Open decodes a sound file by extension. The caller owns the returned
// stream.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, format, nil
}

// Player plays one sound at a time. Starting a sound replaces the previous
// one.
type Player struct {
	// Repeats is the number of extra plays after the first.
	Repeats int
	Logger  logging.Logger

	mu          sync.Mutex
	initialized bool
	ctrl        *beep.Ctrl
	stream      beep.StreamSeekCloser
}

func NewPlayer(repeats int, logger logging.Logger) *Player {
	return &Player{Repeats: repeats, Logger: logging.OrNoop(logger)}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	p.initialized = true
	return nil
}

func (p *Player) Play(path string) error {
	s, format, err := Open(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		s.Close()
		return errors.New("speaker not initialized")
	}
	p.stopLocked()

	var streamer beep.Streamer = beep.Loop(1+max(p.Repeats, 0), s)
	if format.SampleRate != SampleRate {
		streamer = beep.Resample(4, format.SampleRate, SampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.stream = s
	speaker.Play(p.ctrl)
	p.Logger.Debugf("audio", "playing %s", filepath.Base(path))
	return nil
}

func (p *Player) StopSound() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if p.ctrl == nil {
		return nil
	}
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
	speaker.Clear()
	err := p.stream.Close()
	p.ctrl, p.stream = nil, nil
	return err
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.stopLocked()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	return err
}

// NoopSink discards sounds.
type NoopSink struct{}

func (NoopSink) Play(string) error { return nil }
func (NoopSink) StopSound() error  { return nil }
func (NoopSink) Close() error      { return nil }
