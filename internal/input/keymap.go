package input

// Linux input-event-codes.h, US layout.
const (
	codeEsc        = 1
	codeBackspace  = 14
	codeEnter      = 28
	codeLeftCtrl   = 29
	codeLeftShift  = 42
	codeRightShift = 54
	codeLeftAlt    = 56
	codeCapsLock   = 58
	codeF4         = 62
	codeKPEnter    = 96
	codeRightCtrl  = 97
	codeRightAlt   = 100
	codeLeftMeta   = 125
	codeRightMeta  = 126
)

type keyDef struct {
	plain, shifted rune
}

var evdevKeys = map[uint16]keyDef{
	2: {'1', '!'}, 3: {'2', '@'}, 4: {'3', '#'}, 5: {'4', '$'}, 6: {'5', '%'},
	7: {'6', '^'}, 8: {'7', '&'}, 9: {'8', '*'}, 10: {'9', '('}, 11: {'0', ')'},
	12: {'-', '_'}, 13: {'=', '+'},
	codeBackspace: {'\x08', '\x08'},
	16: {'q', 'Q'}, 17: {'w', 'W'}, 18: {'e', 'E'}, 19: {'r', 'R'}, 20: {'t', 'T'},
	21: {'y', 'Y'}, 22: {'u', 'U'}, 23: {'i', 'I'}, 24: {'o', 'O'}, 25: {'p', 'P'},
	26: {'[', '{'}, 27: {']', '}'},
	codeEnter: {'\r', '\r'},
	30: {'a', 'A'}, 31: {'s', 'S'}, 32: {'d', 'D'}, 33: {'f', 'F'}, 34: {'g', 'G'},
	35: {'h', 'H'}, 36: {'j', 'J'}, 37: {'k', 'K'}, 38: {'l', 'L'},
	39: {';', ':'}, 40: {'\'', '"'}, 41: {'`', '~'}, 43: {'\\', '|'},
	44: {'z', 'Z'}, 45: {'x', 'X'}, 46: {'c', 'C'}, 47: {'v', 'V'}, 48: {'b', 'B'},
	49: {'n', 'N'}, 50: {'m', 'M'},
	51: {',', '<'}, 52: {'.', '>'}, 53: {'/', '?'},
	57: {' ', ' '},
	// Keypad, assuming num lock.
	55: {'*', '*'}, 74: {'-', '-'}, 78: {'+', '+'}, 83: {'.', '.'}, 98: {'/', '/'},
	codeKPEnter: {'\r', '\r'},
	71: {'7', '7'}, 72: {'8', '8'}, 73: {'9', '9'},
	75: {'4', '4'}, 76: {'5', '5'}, 77: {'6', '6'},
	79: {'1', '1'}, 80: {'2', '2'}, 81: {'3', '3'}, 82: {'0', '0'},
}

var modifierCodes = map[uint16]Modifier{
	codeLeftShift:  ModShift,
	codeRightShift: ModShift,
	codeLeftCtrl:   ModCtrl,
	codeRightCtrl:  ModCtrl,
	codeLeftAlt:    ModAlt,
	codeRightAlt:   ModAlt,
	codeLeftMeta:   ModMeta,
	codeRightMeta:  ModMeta,
}

// Translator turns raw evdev key codes into Events. It tracks held
// modifiers, the caps lock toggle and the character each held key produced,
// so that a key-up reports the same character as its key-down even when
// shift was released in between.
type Translator struct {
	held     map[uint16]bool
	capsLock bool
	pressed  map[uint16]rune
}

func NewTranslator() *Translator {
	return &Translator{held: map[uint16]bool{}, pressed: map[uint16]rune{}}
}

// Mods returns the current modifier state.
func (t *Translator) Mods() Modifier {
	var m Modifier
	for code := range t.held {
		m |= modifierCodes[code]
	}
	if t.capsLock {
		m |= ModCapsLock
	}
	return m
}

// Translate handles one EV_KEY record: value 1 is a press, 2 an
// auto-repeat, 0 a release. ok is false when the record produces no event.
func (t *Translator) Translate(code uint16, value int32) (ev Event, ok bool) {
	ev.Code = code
	if _, isMod := modifierCodes[code]; isMod {
		switch value {
		case 1:
			t.held[code] = true
			return Event{Type: KeyDown, Mods: t.Mods(), Code: code}, true
		case 0:
			delete(t.held, code)
		}
		return ev, false
	}

	switch code {
	case codeCapsLock:
		if value != 1 {
			return ev, false
		}
		t.capsLock = !t.capsLock
		return Event{Type: KeyDown, Mods: t.Mods(), Code: code}, true
	case codeF4:
		if value != 1 {
			return ev, false
		}
		return Event{Type: Quit, Code: code}, true
	}

	if value == 0 {
		r, seen := t.pressed[code]
		if !seen {
			return ev, false
		}
		delete(t.pressed, code)
		return Event{Type: KeyUp, Rune: r, Mods: t.Mods(), Code: code}, true
	}

	r := t.resolve(code)
	if value == 1 {
		t.pressed[code] = r
	}
	return Event{Type: KeyDown, Rune: r, Mods: t.Mods(), Code: code}, true
}

func (t *Translator) resolve(code uint16) rune {
	def, ok := evdevKeys[code]
	if !ok {
		return 0
	}
	shift := t.Mods()&ModShift != 0
	if def.plain >= 'a' && def.plain <= 'z' && t.capsLock {
		shift = !shift
	}
	if shift {
		return def.shifted
	}
	return def.plain
}
