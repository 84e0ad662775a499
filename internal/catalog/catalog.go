// Package catalog indexes the media tree: per key, the pictures and sounds
// grouped into topics by file basename.
package catalog

import (
	"image"
	"sort"

	"github.com/rook-computer/kbplay/internal/keys"
)

type Kind int

const (
	KindImage Kind = iota
	KindSound
)

func (k Kind) String() string {
	if k == KindSound {
		return "sound"
	}
	return "image"
}

// Asset references one media file. Assets are compared by pointer identity.
type Asset struct {
	Kind     Kind
	Path     string
	Basename string
	Variant  string
	// Image is the decoded picture when the catalog was built in cache
	// mode, nil otherwise.
	Image image.Image
}

// Name is the file name without directory and extension, e.g. "airplane:2".
func (a *Asset) Name() string {
	if a == nil {
		return ""
	}
	if a.Variant == "" {
		return a.Basename
	}
	return a.Basename + ":" + a.Variant
}

// Topic groups the assets sharing one basename.
type Topic struct {
	Basename string
	Images   []*Asset
	Sounds   []*Asset
}

// Entry is the catalog of one key.
type Entry struct {
	Key keys.Key
	// Name is the key's filesystem-safe name and the basename of its self
	// topic.
	Name   string
	Dir    string
	Topics map[string]*Topic
}

// Self returns the topic named after the key. It always exists after a
// build.
func (e *Entry) Self() *Topic {
	return e.Topics[e.Name]
}

// TopicNames returns the self topic name first, then the others sorted.
func (e *Entry) TopicNames() []string {
	names := make([]string, 0, len(e.Topics))
	for n := range e.Topics {
		if n != e.Name {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return append([]string{e.Name}, names...)
}

// DefaultImage is the canonical picture of the key: the self-named image
// without variant, else the first self image.
func (e *Entry) DefaultImage() *Asset {
	return canonical(e.Self().Images)
}

// DefaultSound is the canonical sound of the key, chosen like DefaultImage.
func (e *Entry) DefaultSound() *Asset {
	return canonical(e.Self().Sounds)
}

func canonical(assets []*Asset) *Asset {
	for _, a := range assets {
		if a.Variant == "" {
			return a
		}
	}
	if len(assets) > 0 {
		return assets[0]
	}
	return nil
}

func (e *Entry) topic(basename string) *Topic {
	t, ok := e.Topics[basename]
	if !ok {
		t = &Topic{Basename: basename}
		e.Topics[basename] = t
	}
	return t
}

// Warning reports a file that was left out of the catalog.
type Warning struct {
	Path   string
	Reason string
}

func (w Warning) String() string { return w.Path + ": " + w.Reason }

// Catalog is the result of a build. It is read-only afterwards.
type Catalog struct {
	Root     string
	Entries  map[keys.Key]*Entry
	Warnings []Warning
}

// Entry returns the catalog of k.
func (c *Catalog) Entry(k keys.Key) (*Entry, bool) {
	e, ok := c.Entries[k]
	return e, ok
}
