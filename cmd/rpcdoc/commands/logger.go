package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/erraggy/rpcdoc/openrpc"
)

// LogrusAdapter adapts a logrus entry to openrpc.Logger.
type LogrusAdapter struct {
	entry *logrus.Entry
}

var _ openrpc.Logger = (*LogrusAdapter)(nil)

// NewLogrusAdapter wraps l.
func NewLogrusAdapter(l *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{entry: logrus.NewEntry(l)}
}

func (a *LogrusAdapter) Debug(msg string, attrs ...any) {
	a.entry.WithFields(fields(attrs)).Debug(msg)
}

func (a *LogrusAdapter) Info(msg string, attrs ...any) {
	a.entry.WithFields(fields(attrs)).Info(msg)
}

func (a *LogrusAdapter) Warn(msg string, attrs ...any) {
	a.entry.WithFields(fields(attrs)).Warn(msg)
}

func (a *LogrusAdapter) Error(msg string, attrs ...any) {
	a.entry.WithFields(fields(attrs)).Error(msg)
}

func (a *LogrusAdapter) With(attrs ...any) openrpc.Logger {
	return &LogrusAdapter{entry: a.entry.WithFields(fields(attrs))}
}

// fields converts slog-style alternating key/value pairs. A trailing key
// without a value is recorded under "!BADKEY", as slog does.
func fields(attrs []any) logrus.Fields {
	f := make(logrus.Fields, len(attrs)/2)
	for i := 0; i < len(attrs); i += 2 {
		if i+1 >= len(attrs) {
			f["!BADKEY"] = attrs[i]
			break
		}
		key, ok := attrs[i].(string)
		if !ok {
			key = fmt.Sprint(attrs[i])
		}
		f[key] = attrs[i+1]
	}
	return f
}

// newLogger builds the CLI logger. Diagnostics always go to w (stderr) so
// stdout stays clean for piping.
func newLogger(w io.Writer, level, format string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
