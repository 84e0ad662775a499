// Package keys holds the fixed table of keys the playground reacts to.
package keys

import (
	"sort"
	"strings"
	"unicode"
)

// Key is the canonical character of an allowed key.
type Key rune

// Special characters that have no printable form of their own.
const (
	Return    Key = '\r'
	Backspace Key = '\x08'
	Space     Key = ' '
)

// String returns the canonical character.
func (k Key) String() string { return string(rune(k)) }

// Label is the text rendered on the synthesized keycap image.
func (k Key) Label() string { return strings.ToUpper(k.String()) }

var specialNames = map[Key]string{
	'[':       "leftbracket",
	']':       "rightbracket",
	';':       "semicolon",
	',':       "comma",
	'.':       "period",
	'/':       "forwardslash",
	'`':       "backtick",
	'-':       "minus",
	'+':       "plus",
	'*':       "star",
	'=':       "equals",
	'\'':      "singlequote",
	Return:    "return",
	'\\':      "backslash",
	Backspace: "delete",
	Space:     "spacebar",
}

// Table maps each allowed key to its filesystem-safe name.
// It is immutable after construction.
type Table struct {
	names map[Key]string
	order []Key
}

// Default returns the standard table: a-z, 0-9 and a fixed set of
// punctuation and whitespace keys.
func Default() *Table {
	names := make(map[Key]string, 36+len(specialNames))
	for r := 'a'; r <= 'z'; r++ {
		names[Key(r)] = string(r)
	}
	for r := '0'; r <= '9'; r++ {
		names[Key(r)] = string(r)
	}
	for k, n := range specialNames {
		names[k] = n
	}
	return NewTable(names)
}

// NewTable builds a table from an explicit character to name mapping.
func NewTable(names map[Key]string) *Table {
	t := &Table{names: make(map[Key]string, len(names))}
	for k, n := range names {
		t.names[k] = n
		t.order = append(t.order, k)
	}
	sort.Slice(t.order, func(i, j int) bool { return t.order[i] < t.order[j] })
	return t
}

// Keys returns all keys in ascending character order.
func (t *Table) Keys() []Key {
	out := make([]Key, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of keys in the table.
func (t *Table) Len() int { return len(t.order) }

// Name returns the filesystem-safe name of k.
func (t *Table) Name(k Key) (string, bool) {
	n, ok := t.names[k]
	return n, ok
}

// Lookup resolves a typed character to a key. Comparison is
// case-insensitive so shifted letters resolve to the same key.
// The zero rune never resolves.
func (t *Table) Lookup(r rune) (Key, bool) {
	if r == 0 {
		return 0, false
	}
	k := Key(unicode.ToLower(r))
	if _, ok := t.names[k]; ok {
		return k, true
	}
	return 0, false
}
