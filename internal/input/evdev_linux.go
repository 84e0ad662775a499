//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rook-computer/kbplay/internal/logging"
	"golang.org/x/sys/unix"
)

const evKey = 0x01

// EvdevSource reads key events from every /dev/input/event* device. It
// needs read access to the devices (root or the input group).
type EvdevSource struct {
	Glob   string
	Logger logging.Logger

	events chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	tr     *Translator
}

func NewEvdevSource(logger logging.Logger) *EvdevSource {
	return &EvdevSource{Glob: "/dev/input/event*", Logger: logger, events: make(chan Event, 64), tr: NewTranslator()}
}

func (s *EvdevSource) Events() <-chan Event { return s.events }

// Start opens all devices and begins reading. It fails when no device can
// be opened.
func (s *EvdevSource) Start(ctx context.Context) error {
	logger := logging.OrNoop(s.Logger)
	paths, err := filepath.Glob(s.Glob)
	if err != nil {
		return err
	}
	ctx, s.cancel = context.WithCancel(ctx)

	opened := 0
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			logger.Debugf("input", "skip %s: %v", path, err)
			continue
		}
		opened++
		s.wg.Add(1)
		go s.read(ctx, fd, path)
	}
	if opened == 0 {
		s.cancel()
		return errors.New("no readable evdev devices under " + s.Glob)
	}
	logger.Infof("input", "reading %d evdev devices", opened)
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

func (s *EvdevSource) read(ctx context.Context, fd int, path string) {
	defer s.wg.Done()
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, eventSize*64)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		_, pollErr := unix.Poll(pollFds, 250)
		if pollErr != nil {
			if pollErr == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			if typ != evKey {
				continue
			}
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))

			// One translator serves all devices so modifiers held on one
			// keyboard apply to keys of another.
			s.mu.Lock()
			ev, ok := s.tr.Translate(code, value)
			s.mu.Unlock()
			if !ok {
				continue
			}
			ev.Time = time.Now()
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
