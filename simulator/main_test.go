package main

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rook-computer/kbplay/internal/state"
)

func TestSimulatorTimingFlags(t *testing.T) {
	cmd := newCmd()
	tests := map[string]time.Duration{
		"duration":   state.DefaultMinDisplay,
		"hysteresis": state.DefaultHysteresis,
	}
	for name, want := range tests {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag --%s missing", name)
		}
		if got, ms := f.DefValue, strconv.Itoa(int(want/time.Millisecond)); got != ms {
			t.Errorf("--%s default = %s, want %s", name, got, ms)
		}
	}
}

func TestSimulatorRejectsBadTiming(t *testing.T) {
	o := options{scenario: "empty", pairing: "topic", quitPolicy: "immediate", hysteresis: -1, hold: 400, duration: 1500}
	if err := run(context.Background(), o); err == nil {
		t.Error("negative hysteresis accepted")
	}
}
