package logsvc

import (
	"log"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core"
)

// StdLogger logs to a std *log.Logger only; used in dev and tests where
// rollbar is not wanted.
type StdLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std, enabled: true}
}

func (l *StdLogger) Enable(enabled bool) { l.enabled = enabled }

func (l *StdLogger) log(level, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }

func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	l.std.Fatal(msg)
}
