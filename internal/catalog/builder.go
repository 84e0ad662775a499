package catalog

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rook-computer/kbplay/internal/keys"
	"github.com/rook-computer/kbplay/internal/logging"
)

// ErrIO wraps failures to create or read the media tree.
var ErrIO = errors.New("media directory error")

// Recognized extensions, lower case.
var (
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}
	SoundExtensions = []string{".wav", ".ogg", ".mp3"}
)

// KeycapWriter synthesizes the default picture of a key.
type KeycapWriter interface {
	WriteKeycap(path, label string) error
}

// ImageLoader decodes a picture for cache mode.
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// Builder scans a media root into a Catalog.
type Builder struct {
	Root    string
	Keys    *keys.Table
	Keycaps KeycapWriter
	// Images enables cache mode when set: every picture is decoded during
	// the build.
	Images ImageLoader
	Logger logging.Logger
}

// Build creates missing key directories and keycap pictures, then indexes
// every key directory.
func (b *Builder) Build(ctx context.Context) (*Catalog, error) {
	logger := logging.OrNoop(b.Logger)
	if b.Keys == nil {
		return nil, errors.New("catalog: no key table")
	}
	if err := os.MkdirAll(b.Root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrIO, b.Root, err)
	}

	cat := &Catalog{Root: b.Root, Entries: make(map[keys.Key]*Entry, b.Keys.Len())}
	for _, k := range b.Keys.Keys() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := b.buildEntry(k, cat)
		if err != nil {
			return nil, err
		}
		cat.Entries[k] = entry
	}
	for _, w := range cat.Warnings {
		logger.Warnf("catalog", "%s", w)
	}
	logger.Infof("catalog", "indexed %d keys under %s", len(cat.Entries), b.Root)
	return cat, nil
}

func (b *Builder) buildEntry(k keys.Key, cat *Catalog) (*Entry, error) {
	logger := logging.OrNoop(b.Logger)
	name, _ := b.Keys.Name(k)
	dir := filepath.Join(b.Root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, dir, err)
	}
	if !hasSelfImage(files, name) {
		path := filepath.Join(dir, name+".png")
		logger.Debugf("catalog", "creating keycap image %s", path)
		if b.Keycaps == nil {
			return nil, fmt.Errorf("catalog: %s has no picture and no keycap writer is configured", dir)
		}
		if err := b.Keycaps.WriteKeycap(path, k.Label()); err != nil {
			return nil, fmt.Errorf("synthesize keycap for %q: %w", name, err)
		}
		if files, err = os.ReadDir(dir); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrIO, dir, err)
		}
	}

	entry := &Entry{Key: k, Name: name, Dir: dir, Topics: map[string]*Topic{}}
	entry.topic(name)
	for _, f := range files {
		if f.IsDir() || strings.HasPrefix(f.Name(), ".") {
			continue
		}
		b.addFile(entry, f.Name(), cat)
	}
	backfill(entry)
	return entry, nil
}

func (b *Builder) addFile(entry *Entry, filename string, cat *Catalog) {
	path := filepath.Join(entry.Dir, filename)
	stem, ext := SplitExt(filename)
	basename, variant := SplitVariant(stem)
	asset := &Asset{Path: path, Basename: basename, Variant: variant}

	switch {
	case isImage(ext):
		asset.Kind = KindImage
		if b.Images != nil {
			img, err := b.Images.LoadImage(path)
			if err != nil {
				cat.Warnings = append(cat.Warnings, Warning{Path: path, Reason: "cannot cache image: " + err.Error()})
			} else {
				asset.Image = img
			}
		}
		t := entry.topic(basename)
		t.Images = append(t.Images, asset)
	case isSound(ext):
		asset.Kind = KindSound
		t := entry.topic(basename)
		t.Sounds = append(t.Sounds, asset)
	default:
		cat.Warnings = append(cat.Warnings, Warning{Path: path, Reason: "unrecognized filename extension"})
	}
}

// backfill gives every soundless topic the self topic's sounds. The slice
// is shared, not copied.
func backfill(entry *Entry) {
	self := entry.Self()
	if len(self.Sounds) == 0 {
		return
	}
	for name, t := range entry.Topics {
		if name == entry.Name {
			continue
		}
		if len(t.Sounds) == 0 {
			t.Sounds = self.Sounds
		}
	}
}

func hasSelfImage(files []os.DirEntry, name string) bool {
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		stem, ext := SplitExt(f.Name())
		if stem == name && isImage(ext) {
			return true
		}
	}
	return false
}

// SplitExt splits a file name into stem and lower-cased extension.
func SplitExt(filename string) (stem, ext string) {
	ext = filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext), strings.ToLower(ext)
}

// SplitVariant splits "airplane:2" into ("airplane", "2"). Everything after
// the first colon is the variant.
func SplitVariant(stem string) (basename, variant string) {
	basename, variant, _ = strings.Cut(stem, ":")
	return basename, variant
}

func isImage(ext string) bool { return contains(ImageExtensions, ext) }
func isSound(ext string) bool { return contains(SoundExtensions, ext) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
