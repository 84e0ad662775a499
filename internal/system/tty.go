//go:build linux

// Package system holds the Linux console handling of the framebuffer mode.
package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/kbplay/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// DefaultConsoles are tried in order: the controlling tty, then the active VT.
var DefaultConsoles = []string{"/dev/tty", "/dev/tty0"}

// Console switches the virtual terminal under the framebuffer to graphics
// mode so that the text cursor and kernel messages stay off the pictures.
type Console struct {
	Paths  []string
	Logger logging.Logger
}

func NewConsole(logger logging.Logger) *Console {
	return &Console{Paths: DefaultConsoles, Logger: logging.OrNoop(logger)}
}

// Acquire enters graphics mode and hides the cursor. Both steps are
// attempted; the first failure is returned.
func (c *Console) Acquire() error {
	err := c.setMode(kdGraphics)
	if err != nil {
		c.Logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		c.Logger.Infof("tty", "KD_GRAPHICS set")
	}
	if werr := c.write(hideCursor); werr != nil {
		c.Logger.Errorf("tty", "hide cursor failed: %v", werr)
		err = errors.Join(err, werr)
	}
	return err
}

// Release restores the cursor and text mode.
func (c *Console) Release() error {
	err := c.write(showCursor)
	if err != nil {
		c.Logger.Errorf("tty", "show cursor failed: %v", err)
	}
	if merr := c.setMode(kdText); merr != nil {
		c.Logger.Errorf("tty", "KD_TEXT failed: %v", merr)
		err = errors.Join(err, merr)
	} else {
		c.Logger.Infof("tty", "KD_TEXT set")
	}
	return err
}

func (c *Console) setMode(mode int) error {
	var lastErr error
	for _, p := range c.Paths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no console configured")
	}
	return lastErr
}

func (c *Console) write(s string) error {
	var lastErr error
	for _, p := range c.Paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no console configured")
	}
	return fmt.Errorf("write console: %w", lastErr)
}
