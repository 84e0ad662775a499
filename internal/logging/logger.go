// Package logging provides the component-tagged logger shared by all
// subsystems.
package logging

import (
	"fmt"
	"io"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the logging interface passed to every subsystem. The component
// argument names the emitting subsystem ("catalog", "fb", "input", ...).
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Debugf(component, format string, args ...interface{}) {}
func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Warnf(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// CharmLogger writes leveled, timestamped lines through charmbracelet/log.
type CharmLogger struct {
	l *clog.Logger
}

// New returns a logger writing to w. Debug lines are only emitted when
// debug is true.
func New(w io.Writer, debug bool) *CharmLogger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "kbplay",
	})
	if debug {
		l.SetLevel(clog.DebugLevel)
	} else {
		l.SetLevel(clog.InfoLevel)
	}
	return &CharmLogger{l: l}
}

func (c *CharmLogger) Debugf(component, format string, args ...interface{}) {
	c.l.Debug(fmt.Sprintf(format, args...), "component", component)
}

func (c *CharmLogger) Infof(component, format string, args ...interface{}) {
	c.l.Info(fmt.Sprintf(format, args...), "component", component)
}

func (c *CharmLogger) Warnf(component, format string, args ...interface{}) {
	c.l.Warn(fmt.Sprintf(format, args...), "component", component)
}

func (c *CharmLogger) Errorf(component, format string, args ...interface{}) {
	c.l.Error(fmt.Sprintf(format, args...), "component", component)
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}
