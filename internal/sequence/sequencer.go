// Package sequence decides which picture and sound a key press presents.
//
// Every key has a draw stack. A fresh stack starts with the key's canonical
// pair, followed by every other candidate pair exactly once in random order.
// When the stack runs out it is rebuilt, so no pair repeats before all pairs
// have been shown.
package sequence

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rook-computer/kbplay/internal/catalog"
	"github.com/rook-computer/kbplay/internal/keys"
)

// Presentation is one picture/sound pair. Either side may be nil.
type Presentation struct {
	Image *catalog.Asset
	Sound *catalog.Asset
}

// Empty reports whether neither side is present.
func (p Presentation) Empty() bool { return p.Image == nil && p.Sound == nil }

func (p Presentation) String() string {
	return fmt.Sprintf("(%s, %s)", assetName(p.Image), assetName(p.Sound))
}

func assetName(a *catalog.Asset) string {
	if a == nil {
		return "-"
	}
	return a.Name()
}

// Pairing selects how the candidate pool of a key is formed.
type Pairing int

const (
	// PairWithinTopic pairs pictures only with sounds of the same topic. A
	// topic missing one side contributes pairs with that side absent.
	PairWithinTopic Pairing = iota
	// PairAcrossTopics pairs every picture of the key with every sound of
	// the key.
	PairAcrossTopics
)

// ParsePairing accepts "topic" and "cross".
func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "topic":
		return PairWithinTopic, nil
	case "cross":
		return PairAcrossTopics, nil
	}
	return 0, fmt.Errorf("unknown pairing %q (want topic or cross)", s)
}

func (p Pairing) String() string {
	if p == PairAcrossTopics {
		return "cross"
	}
	return "topic"
}

// Sequencer owns the draw stacks of all keys. It is not safe for
// concurrent use.
type Sequencer struct {
	catalog *catalog.Catalog
	pairing Pairing
	rng     *rand.Rand
	stacks  map[keys.Key][]Presentation
}

// New returns a sequencer over cat. A nil rng is replaced by a
// time-seeded source.
func New(cat *catalog.Catalog, pairing Pairing, rng *rand.Rand) *Sequencer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Sequencer{
		catalog: cat,
		pairing: pairing,
		rng:     rng,
		stacks:  make(map[keys.Key][]Presentation),
	}
}

// Reset rebuilds the draw stack of k.
func (s *Sequencer) Reset(k keys.Key) {
	entry, ok := s.catalog.Entry(k)
	if !ok {
		s.stacks[k] = []Presentation{{}}
		return
	}

	first := Presentation{Image: entry.DefaultImage(), Sound: entry.DefaultSound()}
	var pool []Presentation
	switch s.pairing {
	case PairAcrossTopics:
		pool = crossPool(entry)
	default:
		pool = topicPool(entry)
	}

	seen := map[Presentation]bool{first: true}
	stack := make([]Presentation, 0, len(pool)+1)
	stack = append(stack, first)
	rest := make([]Presentation, 0, len(pool))
	for _, p := range pool {
		if seen[p] {
			continue
		}
		seen[p] = true
		rest = append(rest, p)
	}
	s.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	s.stacks[k] = append(stack, rest...)
}

// Next removes and returns the front of k's stack, rebuilding it first
// when empty.
func (s *Sequencer) Next(k keys.Key) Presentation {
	if len(s.stacks[k]) == 0 {
		s.Reset(k)
	}
	stack := s.stacks[k]
	p := stack[0]
	s.stacks[k] = stack[1:]
	return p
}

// Remaining returns how many presentations are left before k's stack is
// rebuilt.
func (s *Sequencer) Remaining(k keys.Key) int {
	return len(s.stacks[k])
}

func topicPool(entry *catalog.Entry) []Presentation {
	var pool []Presentation
	for _, name := range entry.TopicNames() {
		t := entry.Topics[name]
		images := orAbsent(t.Images)
		sounds := orAbsent(t.Sounds)
		for _, img := range images {
			for _, snd := range sounds {
				if img == nil && snd == nil {
					continue
				}
				pool = append(pool, Presentation{Image: img, Sound: snd})
			}
		}
	}
	return pool
}

func crossPool(entry *catalog.Entry) []Presentation {
	var images, sounds []*catalog.Asset
	seen := map[*catalog.Asset]bool{}
	for _, name := range entry.TopicNames() {
		t := entry.Topics[name]
		for _, a := range t.Images {
			if !seen[a] {
				seen[a] = true
				images = append(images, a)
			}
		}
		for _, a := range t.Sounds {
			if !seen[a] {
				seen[a] = true
				sounds = append(sounds, a)
			}
		}
	}
	// A product with an empty side is empty: only the forced first entry
	// remains.
	if len(images) == 0 || len(sounds) == 0 {
		return nil
	}
	pool := make([]Presentation, 0, len(images)*len(sounds))
	for _, img := range images {
		for _, snd := range sounds {
			pool = append(pool, Presentation{Image: img, Sound: snd})
		}
	}
	return pool
}

// orAbsent returns assets, or a single nil entry when there are none.
func orAbsent(assets []*catalog.Asset) []*catalog.Asset {
	if len(assets) == 0 {
		return []*catalog.Asset{nil}
	}
	return assets
}
