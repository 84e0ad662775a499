package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/kbplay/internal/assets"
	"github.com/rook-computer/kbplay/internal/logging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ErrFontNotFound is returned when none of the preferred fonts can be
// located and parsed.
var ErrFontNotFound = errors.New("no usable font found")

// DefaultFontPreferences is tried in order. The last entry is compiled in,
// so the default list always resolves.
var DefaultFontPreferences = []string{"Monaco.ttf", "Keyboard.ttf", "DejaVuSansMono-Bold.ttf", assets.FontGoMono}

// DefaultFontDirs are searched recursively for preferences given as bare
// file names. A leading "~" is expanded to the home directory.
var DefaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"~/.fonts",
	"~/.local/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts",
	"~/Library/Fonts",
}

// FontProvider yields a face for rendering keycap glyphs.
type FontProvider interface {
	Face(sizePx float64) (font.Face, string, error)
}

// FontLocator resolves the first usable entry of Preferences. Each entry is
// a built-in font name (see assets.BuiltinFont), a path, or a file name
// looked up below Dirs.
type FontLocator struct {
	Preferences []string
	Dirs        []string
	Logger      logging.Logger

	once sync.Once
	data []byte
	name string
	err  error
}

// NewFontLocator prepends override (if any) to the default preferences.
func NewFontLocator(override string, logger logging.Logger) *FontLocator {
	prefs := make([]string, 0, len(DefaultFontPreferences)+1)
	if strings.TrimSpace(override) != "" {
		prefs = append(prefs, override)
	}
	prefs = append(prefs, DefaultFontPreferences...)
	return &FontLocator{Preferences: prefs, Dirs: DefaultFontDirs, Logger: logger}
}

// Face returns a face of the located font at sizePx pixels per em. The
// font file is located and read once; faces are created per call.
func (l *FontLocator) Face(sizePx float64) (font.Face, string, error) {
	l.once.Do(l.locate)
	if l.err != nil {
		return nil, "", l.err
	}
	face, err := parseFace(l.name, l.data, sizePx)
	if err != nil {
		return nil, "", err
	}
	return face, l.name, nil
}

func (l *FontLocator) locate() {
	logger := logging.OrNoop(l.Logger)
	for _, pref := range l.Preferences {
		data, err := l.read(pref)
		if err != nil {
			logger.Debugf("font", "font %q unavailable: %v", pref, err)
			continue
		}
		if _, err := parseFace(pref, data, 12); err != nil {
			logger.Debugf("font", "font %q unusable: %v", pref, err)
			continue
		}
		l.data = data
		l.name = pref
		logger.Debugf("font", "using font %s", pref)
		return
	}
	l.err = fmt.Errorf("%w: tried %s", ErrFontNotFound, strings.Join(l.Preferences, ", "))
}

func (l *FontLocator) read(pref string) ([]byte, error) {
	if data, ok := assets.BuiltinFont(pref); ok {
		return data, nil
	}
	if strings.ContainsRune(pref, filepath.Separator) || strings.ContainsRune(pref, '/') {
		return os.ReadFile(expandHome(pref))
	}
	for _, dir := range l.Dirs {
		if path := findFile(expandHome(dir), pref); path != "" {
			return os.ReadFile(path)
		}
	}
	return nil, fs.ErrNotExist
}

// findFile walks root looking for a file whose base name matches name
// case-insensitively. Unreadable subtrees are skipped.
func findFile(root, name string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// parseFace accepts OpenType/TrueType fonts and collections. Plain
// TrueType files that the sfnt parser rejects fall back to freetype.
func parseFace(name string, data []byte, sizePx float64) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".ttc" || ext == ".otc" {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection %s is empty", name)
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(f, opts)
	}

	f, err := opentype.Parse(data)
	if err == nil {
		return opentype.NewFace(f, opts)
	}
	tt, terr := truetype.Parse(data)
	if terr != nil {
		return nil, fmt.Errorf("parse %s: %v (truetype: %v)", name, err, terr)
	}
	return truetype.NewFace(tt, &truetype.Options{Size: sizePx, DPI: 72, Hinting: font.HintingFull}), nil
}
