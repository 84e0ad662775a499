package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/kbplay/internal/assets"
)

func TestFontLocatorBuiltin(t *testing.T) {
	l := &FontLocator{Preferences: []string{"Missing.ttf", assets.FontGoMono}, Dirs: []string{t.TempDir()}}
	face, name, err := l.Face(64)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if name != assets.FontGoMono {
		t.Errorf("name = %q, want %q", name, assets.FontGoMono)
	}
	if face.Metrics().Height <= 0 {
		t.Error("face has no height")
	}
}

func TestFontLocatorSearchesDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "truetype", "go")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	data, _ := assets.BuiltinFont(assets.FontGoRegular)
	if err := os.WriteFile(filepath.Join(nested, "GoRegular.ttf"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	l := &FontLocator{Preferences: []string{"goregular.TTF"}, Dirs: []string{dir}}
	if _, name, err := l.Face(32); err != nil || name != "goregular.TTF" {
		t.Fatalf("Face() = %q, %v", name, err)
	}
}

func TestFontLocatorExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	data, _ := assets.BuiltinFont(assets.FontGoBold)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	l := &FontLocator{Preferences: []string{path}}
	if _, name, err := l.Face(32); err != nil || name != path {
		t.Fatalf("Face() = %q, %v", name, err)
	}
}

func TestFontLocatorNotFound(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "Broken.ttf")
	if err := os.WriteFile(junk, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &FontLocator{Preferences: []string{"Monaco.ttf", "Broken.ttf"}, Dirs: []string{dir}}
	_, _, err := l.Face(32)
	if !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("err = %v, want ErrFontNotFound", err)
	}
}

func TestNewFontLocatorOverrideFirst(t *testing.T) {
	l := NewFontLocator("Special.ttf", nil)
	if l.Preferences[0] != "Special.ttf" {
		t.Errorf("Preferences[0] = %q", l.Preferences[0])
	}
	if l.Preferences[len(l.Preferences)-1] != assets.FontGoMono {
		t.Errorf("built-in fallback missing: %v", l.Preferences)
	}
	if got := NewFontLocator("  ", nil).Preferences; len(got) != len(DefaultFontPreferences) {
		t.Errorf("blank override should be ignored: %v", got)
	}
}
