package input

import "testing"

func TestTranslatorLettersAndShift(t *testing.T) {
	tr := NewTranslator()

	ev, ok := tr.Translate(30, 1) // a
	if !ok || ev.Type != KeyDown || ev.Rune != 'a' {
		t.Fatalf("a press = %+v, %v", ev, ok)
	}
	if ev, ok = tr.Translate(30, 0); !ok || ev.Type != KeyUp || ev.Rune != 'a' {
		t.Fatalf("a release = %+v, %v", ev, ok)
	}

	ev, ok = tr.Translate(codeLeftShift, 1)
	if !ok || ev.Rune != 0 || ev.Mods != ModShift || !ev.ModifierOnly() {
		t.Fatalf("shift press = %+v, %v", ev, ok)
	}
	if ev, _ = tr.Translate(13, 1); ev.Rune != '+' {
		t.Errorf("shift+= = %q, want +", ev.Rune)
	}
	if ev, _ = tr.Translate(9, 1); ev.Rune != '*' {
		t.Errorf("shift+8 = %q, want *", ev.Rune)
	}
	if _, ok = tr.Translate(codeLeftShift, 0); ok {
		t.Error("modifier release should produce no event")
	}
	// The release keeps the character of the press.
	if ev, _ = tr.Translate(13, 0); ev.Type != KeyUp || ev.Rune != '+' {
		t.Errorf("release after shift up = %+v", ev)
	}
}

func TestTranslatorCapsLock(t *testing.T) {
	tr := NewTranslator()
	ev, ok := tr.Translate(codeCapsLock, 1)
	if !ok || ev.Rune != 0 || ev.Mods&ModCapsLock == 0 {
		t.Fatalf("caps press = %+v, %v", ev, ok)
	}
	if _, ok := tr.Translate(codeCapsLock, 0); ok {
		t.Error("caps release should produce no event")
	}
	if ev, _ = tr.Translate(31, 1); ev.Rune != 'S' {
		t.Errorf("caps+s = %q, want S", ev.Rune)
	}
	if ev, _ = tr.Translate(2, 1); ev.Rune != '1' {
		t.Errorf("caps lock must not shift digits, got %q", ev.Rune)
	}
	tr.Translate(codeRightShift, 1)
	if ev, _ = tr.Translate(32, 1); ev.Rune != 'd' {
		t.Errorf("caps+shift+d = %q, want d", ev.Rune)
	}
}

func TestTranslatorSpecialKeys(t *testing.T) {
	tests := []struct {
		code uint16
		want rune
	}{
		{codeEnter, '\r'},
		{codeKPEnter, '\r'},
		{codeBackspace, '\x08'},
		{57, ' '},
		{53, '/'},
		{78, '+'},
		{55, '*'},
		{200, 0},
	}
	for _, tt := range tests {
		ev, ok := NewTranslator().Translate(tt.code, 1)
		if !ok || ev.Rune != tt.want {
			t.Errorf("code %d = %q, %v want %q", tt.code, ev.Rune, ok, tt.want)
		}
	}
}

func TestTranslatorQuitKeys(t *testing.T) {
	tr := NewTranslator()
	if ev, ok := tr.Translate(codeF4, 1); !ok || ev.Type != Quit {
		t.Errorf("F4 = %+v, %v", ev, ok)
	}
	tr.Translate(codeLeftMeta, 1)
	ev, _ := tr.Translate(16, 1)
	if !ev.IsQuitChord() {
		t.Errorf("meta+q = %+v, want quit chord", ev)
	}
}

func TestTranslatorRepeatAndStrayRelease(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(30, 1)
	if ev, ok := tr.Translate(30, 2); !ok || ev.Type != KeyDown || ev.Rune != 'a' {
		t.Errorf("repeat = %+v, %v", ev, ok)
	}
	if _, ok := tr.Translate(31, 0); ok {
		t.Error("release of a key never pressed should be dropped")
	}
}
