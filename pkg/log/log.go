// Package log provides named, leveled loggers backed by go-logging.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a logging verbosity threshold
type Level logging.Level

// Levels accepted by SetLevel. Each has the value of its go-logging level.
const (
	Debug   = Level(logging.DEBUG)
	Info    = Level(logging.INFO)
	Notice  = Level(logging.NOTICE)
	Warning = Level(logging.WARNING)
	Error   = Level(logging.ERROR)
)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} [%{module}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the logging surface used across the renderer
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w, keeping the current level
func SetSink(w io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of all loggers
func SetLevel(level Level) {
	leveledBackend.SetLevel(logging.Level(level), "")
}

// Verbosity maps a count of -v flags to a level: none is Notice, one is
// Info and two or more is Debug
func Verbosity(count int) Level {
	switch {
	case count >= 2:
		return Debug
	case count == 1:
		return Info
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stderr)
}
