package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// WriteTone writes a mono 16-bit wav file holding a sine tone.
func WriteTone(path string, freq float64, d time.Duration) error {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return fmt.Errorf("tone %.0fHz: %w", freq, err)
	}
	return writeWav(path, beep.Take(SampleRate.N(d), sine))
}

func writeWav(path string, s beep.Streamer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: SampleRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
