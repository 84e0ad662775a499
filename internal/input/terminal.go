package input

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHold is how long a terminal key counts as held. Terminals report
// no key releases, so a key-up is synthesized once no repeat of the key
// arrived for this long.
const DefaultHold = 400 * time.Millisecond

// TerminalSource reads keys from a tcell screen. Escape and Ctrl+C quit.
type TerminalSource struct {
	Screen tcell.Screen
	Hold   time.Duration

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	holds map[rune]hold
	seq   uint64
}

// hold is the pending synthetic key-up of one key. gen identifies the
// timer that may still deliver it.
type hold struct {
	timer *time.Timer
	gen   uint64
}

func NewTerminalSource(screen tcell.Screen) *TerminalSource {
	return &TerminalSource{
		Screen: screen,
		Hold:   DefaultHold,
		events: make(chan Event, 64),
		holds:  map[rune]hold{},
	}
}

func (s *TerminalSource) Events() <-chan Event { return s.events }

func (s *TerminalSource) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.poll()
	go func() {
		<-s.ctx.Done()
		// Wake PollEvent so the poll loop notices the cancellation.
		_ = s.Screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	return nil
}

func (s *TerminalSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.mu.Lock()
	for r, h := range s.holds {
		h.timer.Stop()
		delete(s.holds, r)
	}
	s.mu.Unlock()
	return nil
}

func (s *TerminalSource) poll() {
	defer s.wg.Done()
	for {
		raw := s.Screen.PollEvent()
		if raw == nil || s.ctx.Err() != nil {
			return
		}
		key, ok := raw.(*tcell.EventKey)
		if !ok {
			continue
		}
		ev, ok := TranslateKey(key)
		if !ok {
			continue
		}
		ev.Time = time.Now()
		s.send(ev)
		if ev.Type == KeyDown && ev.Rune != 0 {
			s.holdUntilQuiet(ev.Rune, ev.Mods)
		}
	}
}

// holdUntilQuiet (re)arms the synthetic key-up of r. Every arming gets a
// fresh timer and generation, so a timer that already fired cannot deliver
// a second key-up.
func (s *TerminalSource) holdUntilQuiet(r rune, mods Modifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.holds[r]; ok {
		h.timer.Stop()
	}
	s.seq++
	gen := s.seq
	s.holds[r] = hold{
		timer: time.AfterFunc(s.Hold, func() { s.release(r, mods, gen) }),
		gen:   gen,
	}
}

// release sends the key-up of r if gen is still the current hold.
func (s *TerminalSource) release(r rune, mods Modifier, gen uint64) {
	s.mu.Lock()
	h, ok := s.holds[r]
	if !ok || h.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.holds, r)
	s.mu.Unlock()
	s.send(Event{Type: KeyUp, Rune: r, Mods: mods, Time: time.Now()})
}

func (s *TerminalSource) send(ev Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// TranslateKey maps a tcell key event to a key-down or quit Event.
func TranslateKey(key *tcell.EventKey) (Event, bool) {
	mods := translateMods(key.Modifiers())
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Event{Type: Quit}, true
	case tcell.KeyEnter:
		return Event{Type: KeyDown, Rune: '\r', Mods: mods}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: KeyDown, Rune: '\x08', Mods: mods}, true
	case tcell.KeyRune:
		return Event{Type: KeyDown, Rune: key.Rune(), Mods: mods}, true
	}
	return Event{}, false
}

func translateMods(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= ModMeta
	}
	return out
}
