package assets

import (
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font names accepted wherever a font file name is expected.
const (
	FontGoMono    = "gomono"
	FontGoRegular = "goregular"
	FontGoBold    = "gobold"
)

var builtinFonts = map[string][]byte{
	FontGoMono:    gomono.TTF,
	FontGoRegular: goregular.TTF,
	FontGoBold:    gobold.TTF,
}

// BuiltinFont returns the TTF bytes of a font compiled into the binary.
// Names are matched case-insensitively.
func BuiltinFont(name string) ([]byte, bool) {
	data, ok := builtinFonts[strings.ToLower(strings.TrimSpace(name))]
	return data, ok
}
