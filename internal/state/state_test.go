package state

import (
	"errors"
	"testing"
	"time"

	"github.com/rook-computer/kbplay/internal/catalog"
	"github.com/rook-computer/kbplay/internal/input"
	"github.com/rook-computer/kbplay/internal/keys"
	"github.com/rook-computer/kbplay/internal/sequence"
)

type recorder struct {
	shows     []sequence.Presentation
	clears    int
	stops     int
	showErr   error
	lastSound *catalog.Asset
}

func (r *recorder) Show(image, sound *catalog.Asset) error {
	r.shows = append(r.shows, sequence.Presentation{Image: image, Sound: sound})
	r.lastSound = sound
	return r.showErr
}

func (r *recorder) Clear() error     { r.clears++; return nil }
func (r *recorder) StopSound() error { r.stops++; return nil }

// fixedDraws returns one presentation per key, with a sound for 'a' only.
type fixedDraws struct{ calls []keys.Key }

func (f *fixedDraws) Next(k keys.Key) sequence.Presentation {
	f.calls = append(f.calls, k)
	p := sequence.Presentation{Image: &catalog.Asset{Kind: catalog.KindImage, Basename: k.String()}}
	if k == 'a' {
		p.Sound = &catalog.Asset{Kind: catalog.KindSound, Basename: "a"}
	}
	return p
}

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func down(r rune) input.Event { return input.Event{Type: input.KeyDown, Rune: r} }
func up(r rune) input.Event   { return input.Event{Type: input.KeyUp, Rune: r} }

func newMachine() (*Machine, *recorder, *fixedDraws) {
	rec := &recorder{}
	draws := &fixedDraws{}
	m := NewMachine(keys.Default(), draws, rec)
	m.MinDisplay = ms(1500)
	m.Hysteresis = ms(30)
	return m, rec, draws
}

func TestAcceptAndRelease(t *testing.T) {
	m, rec, _ := newMachine()

	started, err := m.KeyDown(down('a'), t0)
	if !started || err != nil {
		t.Fatalf("KeyDown = %v, %v", started, err)
	}
	s := m.Snapshot()
	if s.Phase != ACTIVE || s.ActiveKey != 'a' || !s.ActiveSince.Equal(t0) {
		t.Fatalf("session = %+v", s)
	}

	deadline, err := m.KeyUp(up('a'), t0.Add(ms(2000)))
	if err != nil || !deadline.IsZero() {
		t.Fatalf("KeyUp = %v, %v", deadline, err)
	}
	if m.Snapshot().Phase != IDLE || m.Snapshot().ActiveKey != 0 {
		t.Fatalf("session after release = %+v", m.Snapshot())
	}
	if rec.clears != 1 || rec.stops != 1 {
		t.Errorf("clears=%d stops=%d, want 1 and 1", rec.clears, rec.stops)
	}
}

func TestReleaseWithoutSoundSkipsStopSound(t *testing.T) {
	m, rec, _ := newMachine()
	m.KeyDown(down('b'), t0)
	m.KeyUp(up('b'), t0.Add(ms(1600)))
	if rec.clears != 1 || rec.stops != 0 {
		t.Errorf("clears=%d stops=%d, want 1 and 0", rec.clears, rec.stops)
	}
}

func TestSingleActiveKey(t *testing.T) {
	m, rec, _ := newMachine()
	m.KeyDown(down('a'), t0)

	for i, r := range []rune{'b', 'c', '1', 'A'} {
		started, _ := m.KeyDown(down(r), t0.Add(ms(5000+i)))
		if started {
			t.Fatalf("key-down %q started a presentation while 'a' is active", r)
		}
	}
	if _, err := m.KeyUp(up('b'), t0.Add(ms(6000))); err != nil {
		t.Fatal(err)
	}
	if m.Snapshot().Phase != ACTIVE {
		t.Fatal("key-up of another key must not release")
	}
	if len(rec.shows) != 1 {
		t.Errorf("shows = %d, want 1", len(rec.shows))
	}
}

func TestDebounce(t *testing.T) {
	tests := []struct {
		name    string
		release time.Duration
		second  time.Duration
		want    bool
	}{
		{"re-press while held", 0, ms(100), false},
		{"released, inside window", ms(1500), ms(1510), false},
		{"released, one ms short", ms(1500), ms(1529), false},
		{"released, exactly at window", ms(1500), ms(1530), true},
		{"released, long after", ms(1500), ms(5000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec, _ := newMachine()
			m.KeyDown(down('a'), t0)
			if tt.release > 0 {
				m.KeyUp(up('a'), t0.Add(tt.release))
			}
			started, _ := m.KeyDown(down('a'), t0.Add(tt.second))
			if started != tt.want {
				t.Errorf("second key-down started = %v, want %v", started, tt.want)
			}
			wantShows := 1
			if tt.want {
				wantShows = 2
			}
			if len(rec.shows) != wantShows {
				t.Errorf("shows = %d, want %d", len(rec.shows), wantShows)
			}
		})
	}
}

func TestDeferredRelease(t *testing.T) {
	m, rec, _ := newMachine()
	m.KeyDown(down('a'), t0)

	deadline, err := m.KeyUp(up('a'), t0.Add(ms(200)))
	if err != nil {
		t.Fatal(err)
	}
	if want := t0.Add(ms(1500)); !deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
	if d, ok := m.Deadline(); !ok || !d.Equal(deadline) {
		t.Fatalf("Deadline() = %v, %v", d, ok)
	}

	// Still active: other keys stay blocked.
	if started, _ := m.KeyDown(down('b'), t0.Add(ms(1000))); started {
		t.Fatal("key accepted during deferred release")
	}
	if err := m.Tick(t0.Add(ms(1499))); err != nil || m.Snapshot().Phase != ACTIVE {
		t.Fatalf("early Tick released: %+v", m.Snapshot())
	}
	if err := m.Tick(t0.Add(ms(1500))); err != nil {
		t.Fatal(err)
	}
	if m.Snapshot().Phase != IDLE || rec.clears != 1 {
		t.Fatalf("Tick did not release: %+v clears=%d", m.Snapshot(), rec.clears)
	}
	if _, ok := m.Deadline(); ok {
		t.Error("deadline should be cleared after release")
	}
}

func TestIgnoredKeyDowns(t *testing.T) {
	m, rec, draws := newMachine()
	events := []input.Event{
		{Type: input.KeyDown, Mods: input.ModShift},
		{Type: input.KeyDown, Mods: input.ModCapsLock},
		{Type: input.KeyDown},
		{Type: input.KeyDown, Rune: '!', Mods: input.ModShift},
		{Type: input.KeyDown, Rune: '\t'},
	}
	for _, ev := range events {
		if started, err := m.KeyDown(ev, t0); started || err != nil {
			t.Errorf("KeyDown(%+v) = %v, %v", ev, started, err)
		}
	}
	if len(rec.shows) != 0 || len(draws.calls) != 0 {
		t.Error("ignored events must not draw or present")
	}
	if m.Snapshot().Accepted {
		t.Error("ignored events must not count as acceptance")
	}
}

func TestCaseFolding(t *testing.T) {
	m, _, draws := newMachine()
	m.KeyDown(input.Event{Type: input.KeyDown, Rune: 'A', Mods: input.ModShift}, t0)
	if len(draws.calls) != 1 || draws.calls[0] != 'a' {
		t.Fatalf("draws = %q", draws.calls)
	}
	m.KeyUp(up('a'), t0.Add(ms(1600)))
	if m.Snapshot().Phase != IDLE {
		t.Error("lowercase key-up should release an uppercase press")
	}
}

func TestPresenterErrorStillTransitions(t *testing.T) {
	m, rec, _ := newMachine()
	rec.showErr = errors.New("no such file")
	started, err := m.KeyDown(down('a'), t0)
	if !started || err == nil {
		t.Fatalf("KeyDown = %v, %v; want started with error", started, err)
	}
	if m.Snapshot().Phase != ACTIVE {
		t.Fatal("presenter failure must not block the transition")
	}
}

func TestDisplayEnds(t *testing.T) {
	m, _, _ := newMachine()
	if _, ok := m.DisplayEnds(); ok {
		t.Fatal("idle machine has no display end")
	}
	m.KeyDown(down('z'), t0)
	end, ok := m.DisplayEnds()
	if !ok || !end.Equal(t0.Add(ms(1500))) {
		t.Errorf("DisplayEnds = %v, %v", end, ok)
	}
	if cur, ok := m.Current(); !ok || cur.Image == nil || cur.Image.Basename != "z" {
		t.Errorf("Current = %v, %v", cur, ok)
	}
}

func TestShutdown(t *testing.T) {
	m, rec, _ := newMachine()
	if err := m.Shutdown(); err != nil || rec.clears != 0 {
		t.Fatalf("idle Shutdown: err=%v clears=%d", err, rec.clears)
	}
	m.KeyDown(down('a'), t0)
	if err := m.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if m.Snapshot().Phase != IDLE || rec.clears != 1 || rec.stops != 1 {
		t.Errorf("after Shutdown: %+v clears=%d stops=%d", m.Snapshot(), rec.clears, rec.stops)
	}
}
