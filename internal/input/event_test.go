package input

import "testing"

func TestQuitChord(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{Event{Type: KeyDown, Rune: 'q', Mods: ModMeta}, true},
		{Event{Type: KeyDown, Rune: 'Q', Mods: ModMeta | ModShift}, true},
		{Event{Type: KeyDown, Rune: 'q'}, false},
		{Event{Type: KeyUp, Rune: 'q', Mods: ModMeta}, false},
		{Event{Type: KeyDown, Rune: 'w', Mods: ModMeta}, false},
	}
	for _, tt := range tests {
		if got := tt.ev.IsQuitChord(); got != tt.want {
			t.Errorf("%+v.IsQuitChord() = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestModifierOnly(t *testing.T) {
	if !(Event{Type: KeyDown, Mods: ModShift}).ModifierOnly() {
		t.Error("shift alone should be modifier-only")
	}
	if (Event{Type: KeyDown, Rune: 'A', Mods: ModShift}).ModifierOnly() {
		t.Error("shift+a resolves to a character")
	}
	if (Event{Type: KeyDown}).ModifierOnly() {
		t.Error("no modifiers is not modifier-only")
	}
}

func TestChanSourceStampsTime(t *testing.T) {
	src := NewChanSource(1)
	src.Send(Event{Type: KeyDown, Rune: 'a'})
	ev := <-src.Events()
	if ev.Time.IsZero() {
		t.Error("Send should stamp the event time")
	}
	src.Close()
	if _, ok := <-src.Events(); ok {
		t.Error("channel should be closed")
	}
}
