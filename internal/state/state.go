// Package state holds the input session and the state machine deciding
// when a key press starts or ends a presentation.
package state

import (
	"time"

	"github.com/rook-computer/kbplay/internal/catalog"
	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/keys"
	"github.com/rook-computer/kbplay/internal/logging"
	"github.com/rook-computer/kbplay/internal/sequence"
)

type Phase int

const (
	IDLE Phase = iota
	ACTIVE
)

func (p Phase) String() string {
	if p == ACTIVE {
		return "active"
	}
	return "idle"
}

// Default timing: minimum display and debounce slack.
const (
	DefaultMinDisplay = 1500 * time.Millisecond
	DefaultHysteresis = 30 * time.Millisecond
)

// Session is the input session state.
type Session struct {
	Phase       Phase
	ActiveKey   keys.Key
	ActiveSince time.Time
	// Accepted is false until the first key-down has been accepted.
	Accepted bool
	// ReleaseAt is set while the active key has been released before its
	// minimum display time elapsed.
	ReleaseAt time.Time
}

// Presenter shows presentations. Errors are reported but never stop the
// machine.
type Presenter interface {
	Show(image, sound *catalog.Asset) error
	Clear() error
	StopSound() error
}

// Drawer yields the next presentation of a key.
type Drawer interface {
	Next(k keys.Key) sequence.Presentation
}

// Machine is the single writer of the session. It performs no I/O of its
// own and is driven with explicit timestamps.
type Machine struct {
	Keys       *keys.Table
	Draws      Drawer
	Presenter  Presenter
	MinDisplay time.Duration
	Hysteresis time.Duration
	Logger     logging.Logger

	session Session
	current sequence.Presentation
}

func NewMachine(table *keys.Table, draws Drawer, presenter Presenter) *Machine {
	return &Machine{
		Keys:       table,
		Draws:      draws,
		Presenter:  presenter,
		MinDisplay: DefaultMinDisplay,
		Hysteresis: DefaultHysteresis,
		Logger:     logging.NoopLogger{},
	}
}

// Snapshot returns a copy of the session.
func (m *Machine) Snapshot() Session { return m.session }

// Current returns the presentation on screen, if any.
func (m *Machine) Current() (sequence.Presentation, bool) {
	return m.current, m.session.Phase == ACTIVE
}

// KeyDown handles a key press. It reports whether a presentation started;
// err carries a presenter failure for that presentation.
func (m *Machine) KeyDown(ev input.Event, now time.Time) (started bool, err error) {
	logger := logging.OrNoop(m.Logger)
	if ev.Rune == 0 {
		return false, nil
	}
	k, ok := m.Keys.Lookup(ev.Rune)
	if !ok {
		return false, nil
	}
	if m.session.Phase == ACTIVE {
		return false, nil
	}
	if m.session.Accepted && now.Sub(m.session.ActiveSince) < m.MinDisplay+m.Hysteresis {
		logger.Debugf("state", "debounced %q", k.String())
		return false, nil
	}

	m.session = Session{Phase: ACTIVE, ActiveKey: k, ActiveSince: now, Accepted: true}
	m.current = m.Draws.Next(k)
	logger.Debugf("state", "accepted %q: %s", k.String(), m.current)
	return true, m.Presenter.Show(m.current.Image, m.current.Sound)
}

// KeyUp handles a key release. Releasing the active key before its minimum
// display time defers the stop; the returned deadline is when Tick will
// perform it. A zero deadline means nothing is pending.
func (m *Machine) KeyUp(ev input.Event, now time.Time) (deadline time.Time, err error) {
	if m.session.Phase != ACTIVE {
		return time.Time{}, nil
	}
	k, ok := m.Keys.Lookup(ev.Rune)
	if !ok || k != m.session.ActiveKey {
		return time.Time{}, nil
	}
	due := m.session.ActiveSince.Add(m.MinDisplay)
	if now.Before(due) {
		m.session.ReleaseAt = due
		return due, nil
	}
	return time.Time{}, m.release()
}

// Tick performs a deferred release once it is due.
func (m *Machine) Tick(now time.Time) error {
	if m.session.Phase != ACTIVE || m.session.ReleaseAt.IsZero() || now.Before(m.session.ReleaseAt) {
		return nil
	}
	return m.release()
}

// Deadline returns the pending deferred release, if any.
func (m *Machine) Deadline() (time.Time, bool) {
	if m.session.Phase != ACTIVE || m.session.ReleaseAt.IsZero() {
		return time.Time{}, false
	}
	return m.session.ReleaseAt, true
}

// DisplayEnds returns when the active presentation has been shown for its
// minimum time. ok is false while idle.
func (m *Machine) DisplayEnds() (t time.Time, ok bool) {
	if m.session.Phase != ACTIVE {
		return time.Time{}, false
	}
	return m.session.ActiveSince.Add(m.MinDisplay), true
}

// Shutdown ends the active presentation, if any, regardless of its minimum
// display time.
func (m *Machine) Shutdown() error {
	if m.session.Phase != ACTIVE {
		return nil
	}
	return m.release()
}

func (m *Machine) release() error {
	logging.OrNoop(m.Logger).Debugf("state", "released %q", m.session.ActiveKey.String())
	hadSound := m.current.Sound != nil
	m.session.Phase = IDLE
	m.session.ActiveKey = 0
	m.session.ReleaseAt = time.Time{}
	m.current = sequence.Presentation{}

	err := m.Presenter.Clear()
	if hadSound {
		if serr := m.Presenter.StopSound(); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}
