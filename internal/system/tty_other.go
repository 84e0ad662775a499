//go:build !linux

package system

import "github.com/rook-computer/kbplay/internal/logging"

// Console is a no-op outside Linux.
type Console struct {
	Paths  []string
	Logger logging.Logger
}

func NewConsole(logger logging.Logger) *Console { return &Console{Logger: logging.OrNoop(logger)} }

func (c *Console) Acquire() error { return nil }
func (c *Console) Release() error { return nil }
