// Package input turns keyboard activity into key-down, key-up and quit
// events for the playground loop.
package input

import (
	"context"
	"time"
	"unicode"
)

type Type int

const (
	KeyDown Type = iota
	KeyUp
	Quit
)

func (t Type) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case Quit:
		return "quit"
	}
	return "unknown"
}

type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
	ModCapsLock
)

// Event is one keyboard event. Rune is the resolved character, or zero when
// the key has none (a modifier pressed alone, a lock toggle).
type Event struct {
	Type Type
	Rune rune
	Mods Modifier
	// Code is the source specific key code, for logging only.
	Code uint16
	Time time.Time
}

// IsQuitChord reports whether ev is Meta+q, the keyboard quit shortcut.
func (ev Event) IsQuitChord() bool {
	return ev.Type == KeyDown && ev.Mods&ModMeta != 0 && unicode.ToLower(ev.Rune) == 'q'
}

// ModifierOnly reports a key-down that carries modifiers but no character.
func (ev Event) ModifierOnly() bool {
	return ev.Mods != 0 && ev.Rune == 0
}

// Source produces events until Stop is called or its context ends.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// ChanSource is a Source fed by Send; used by tests and scripted runs.
type ChanSource struct{ ch chan Event }

func NewChanSource(buffer int) *ChanSource { return &ChanSource{ch: make(chan Event, buffer)} }

func (c *ChanSource) Start(ctx context.Context) error { return nil }
func (c *ChanSource) Stop() error                     { return nil }
func (c *ChanSource) Events() <-chan Event            { return c.ch }

// Send queues ev, stamping the current time when ev.Time is zero.
func (c *ChanSource) Send(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	c.ch <- ev
}

// Close ends the event stream.
func (c *ChanSource) Close() { close(c.ch) }
