// Package logging configures the logrus logger used by the rest of mealplan.
//
// The terminal belongs to the UI, so log entries go to a file (or to an
// explicit writer in tests). Components receive the *logrus.Logger from the
// composition root and attach context with WithFields.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Options for Init.
type Options struct {
	// File receives log entries. Parent directories are created.
	File string

	// Output overrides File when set.
	Output io.Writer

	// Level is a logrus level name. Empty means info.
	Level string

	// Prefix is prepended to every formatted entry.
	Prefix string
}

type prefixFormatter struct {
	prefix    string
	formatter logrus.Formatter
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b, err := f.formatter.Format(e)
	if err != nil {
		return nil, err
	}
	return append([]byte(f.prefix), b...), nil
}

// Init builds a logger from o. The returned close function releases the log
// file and is safe to call when Output was supplied.
func Init(o Options) (*logrus.Logger, func() error, error) {
	level := logrus.InfoLevel
	if name := strings.TrimSpace(o.Level); name != "" {
		parsed, err := logrus.ParseLevel(name)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	closer := func() error { return nil }
	out := o.Output
	if out == nil {
		path := strings.TrimSpace(o.File)
		if path == "" {
			return nil, nil, fmt.Errorf("open log file: no file or output configured")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		DisableColors:   true,
	}
	if o.Prefix != "" {
		formatter = &prefixFormatter{prefix: o.Prefix, formatter: formatter}
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(formatter)
	logger.SetLevel(level)
	return logger, closer, nil
}

// Discard returns a logger that drops everything. Tests and optional
// components use it in place of a nil logger.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
