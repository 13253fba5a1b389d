// Package logging configures the structured logger shared by the CLI and the server.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options selects the logger's output format and verbosity.
type Options struct {
	Level string
	JSON  bool
	Debug bool
}

// New builds a logger writing to out. Debug forces the debug level; an
// unparseable level falls back to info.
func New(out io.Writer, opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	return l
}
