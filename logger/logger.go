// Package logger provides prefixed, coloured component loggers on top of logrus.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrEmptyPrefix = errors.New("logger prefix is empty")

// Logger writes lines of the form "[PREFIX] [LEVEL] message" with the prefix
// rendered in the component's colour.
type Logger struct {
	entry *logrus.Logger
}

// New creates a logger for one component.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrEmptyPrefix
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{entry: l}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s[%s]%s [%s] %s\n",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.prefix, ColorReset,
		strings.ToUpper(e.Level.String()),
		e.Message,
	)
	return b.Bytes(), nil
}
