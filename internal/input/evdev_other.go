//go:build !linux

package input

import (
	"context"
	"errors"

	"github.com/rook-computer/kbplay/internal/logging"
)

// EvdevSource is only available on Linux.
type EvdevSource struct {
	Glob   string
	Logger logging.Logger
	events chan Event
}

func NewEvdevSource(logger logging.Logger) *EvdevSource {
	return &EvdevSource{Logger: logger, events: make(chan Event)}
}

func (s *EvdevSource) Start(ctx context.Context) error {
	return errors.New("evdev input is only supported on linux")
}
func (s *EvdevSource) Stop() error          { return nil }
func (s *EvdevSource) Events() <-chan Event { return s.events }
