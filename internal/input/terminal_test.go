package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Event{Type: KeyDown, Rune: 'x'}, true},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), Event{Type: KeyDown, Rune: 'X', Mods: ModShift}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Event{Type: KeyDown, Rune: '\r'}, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Event{Type: KeyDown, Rune: '\x08'}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Type: Quit}, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Event{Type: Quit}, true},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			if ok != tt.ok || got != tt.want {
				t.Errorf("TranslateKey = %+v, %v want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func next(t *testing.T, src Source) Event {
	t.Helper()
	select {
	case ev := <-src.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestTerminalSourceSynthesizesKeyUp(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	src := NewTerminalSource(screen)
	src.Hold = 30 * time.Millisecond
	if err := src.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer src.Stop()

	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)
	if ev := next(t, src); ev.Type != KeyDown || ev.Rune != 'k' || ev.Time.IsZero() {
		t.Fatalf("first event = %+v", ev)
	}
	if ev := next(t, src); ev.Type != KeyUp || ev.Rune != 'k' {
		t.Fatalf("second event = %+v", ev)
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if ev := next(t, src); ev.Type != Quit {
		t.Fatalf("escape = %+v", ev)
	}
}

func TestStaleHoldTimerSendsNoKeyUp(t *testing.T) {
	src := NewTerminalSource(nil)
	src.Hold = 40 * time.Millisecond
	src.ctx, src.cancel = context.WithCancel(context.Background())
	defer src.cancel()

	src.holdUntilQuiet('k', 0)
	src.mu.Lock()
	first := src.holds['k'].gen
	src.mu.Unlock()
	src.holdUntilQuiet('k', 0)

	// The first timer firing late, after the key was re-armed.
	src.release('k', 0, first)
	select {
	case ev := <-src.Events():
		t.Fatalf("superseded timer delivered %+v", ev)
	default:
	}

	if ev := next(t, src); ev.Type != KeyUp || ev.Rune != 'k' {
		t.Fatalf("key-up = %+v", ev)
	}
	// Once released, neither generation can deliver again.
	src.release('k', 0, first)
	select {
	case ev := <-src.Events():
		t.Fatalf("second key-up %+v", ev)
	case <-time.After(3 * src.Hold):
	}
}
