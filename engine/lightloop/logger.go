package lightloop

import (
	"fmt"
	"log"
	"os"
)

// Logger receives the light loop's diagnostic output. The loop never logs on
// the per-light hot path above debug level.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type stdLogger struct {
	debug  bool
	prefix string
	out    *log.Logger
}

// NewStdLogger returns a Logger writing to stderr through the standard log
// package, with every line prefixed by "[prefix]". Debug lines are dropped
// unless debug is true.
func NewStdLogger(prefix string, debug bool) Logger {
	return &stdLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *stdLogger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *stdLogger) Warnf(format string, args ...any) {
	l.out.Print(l.prefixf("WARN", format, args...))
}

func (l *stdLogger) prefixf(level, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

type nopLogger struct{}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any)  {}
