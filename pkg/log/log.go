package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger writing plain text lines to stderr.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewWithOutput returns a Logger writing to w at debug level.
func NewWithOutput(w io.Writer) Logger {
	l := New().(*logrus.Logger)
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	return l
}
