// Package logger writes leveled, color-tagged log lines for one component.
package logger

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrNilWriter = errors.New("logger needs an output writer")

// Logger tags every line with a colored component prefix.
type Logger struct {
	entry *logrus.Entry
	tag   string
}

// New creates a Logger for the component named prefix.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableQuote:    true,
	})

	return &Logger{
		entry: logrus.NewEntry(base),
		tag:   fmt.Sprintf("%s[%s]%s", color, prefix, ColorReset),
	}, nil
}

func (l *Logger) Info(msg string) {
	l.entry.Info(l.tag + " " + msg)
}

func (l *Logger) Warning(msg string) {
	l.entry.Warn(l.tag + " " + msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(l.tag + " " + msg)
}
