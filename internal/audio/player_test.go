package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestWriteToneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := WriteTone(path, 440, 250*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	s, format, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if format.SampleRate != SampleRate || format.NumChannels != 1 {
		t.Errorf("format = %+v", format)
	}
	if want := SampleRate.N(250 * time.Millisecond); s.Len() != want {
		t.Errorf("Len = %d, want %d", s.Len(), want)
	}
}

func TestOpenSilence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.WAV")
	if err := writeWav(path, beep.Silence(1000)); err != nil {
		t.Fatal(err)
	}
	s, _, err := Open(path)
	if err != nil {
		t.Fatalf("upper-case extension: %v", err)
	}
	s.Close()
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(txt); !errors.Is(err, ErrUnsupported) {
		t.Errorf("txt: err = %v, want ErrUnsupported", err)
	}

	bogus := filepath.Join(dir, "bogus.wav")
	if err := os.WriteFile(bogus, []byte("not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(bogus); err == nil {
		t.Error("corrupt wav decoded without error")
	}

	if _, _, err := Open(filepath.Join(dir, "missing.ogg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := WriteTone(path, 220, 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(1, nil)
	if err := p.Play(path); err == nil {
		t.Error("Play before Init should fail")
	}
	if err := p.StopSound(); err != nil {
		t.Errorf("StopSound with nothing playing: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
