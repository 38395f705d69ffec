package logger

import "log"

// Levels in increasing order of severity. SILENCE drops everything and is
// what tests run with.
const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// Logger is the leveled logger carried through the context.
type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
}

// NewLogger returns a logger writing through the standard library logger,
// dropping any message below the given level.
func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

func (l *defaultLogger) Debugf(msg string, a ...any) { l.logf(DEBUG, msg, a...) }
func (l *defaultLogger) Infof(msg string, a ...any)  { l.logf(INFO, msg, a...) }
func (l *defaultLogger) Warnf(msg string, a ...any)  { l.logf(WARNING, msg, a...) }
func (l *defaultLogger) Errorf(msg string, a ...any) { l.logf(ERROR, msg, a...) }

func (l *defaultLogger) logf(level int, msg string, a ...any) {
	if level < l.level {
		return
	}

	log.Printf(msg+"\n", a...)
}
