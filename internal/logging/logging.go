// Package logging wraps go-logging with module-named leveled loggers that
// share one backend.
package logging

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects every logger to sink. The level resets to Notice.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

func SetLevel(level Level) {
	var l logging.Level
	switch level {
	case Debug:
		l = logging.DEBUG
	case Info:
		l = logging.INFO
	case Notice:
		l = logging.NOTICE
	case Warning:
		l = logging.WARNING
	default:
		l = logging.ERROR
	}
	leveledBackend.SetLevel(l, "")
}

// Verbosity maps the -v / --vv flags to a level.
func Verbosity(v, vv bool) Level {
	switch {
	case vv:
		return Debug
	case v:
		return Info
	}
	return Notice
}

// stderr keeps stdout free for command output such as CSV and JSON.
func init() {
	SetSink(os.Stderr)
}
