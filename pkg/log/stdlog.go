package log

import (
	stdlog "log"
	"log/slog"
)

// ToStdLogger adapts l to a *log.Logger emitting at level. Loggers not built
// by NewLogger are wrapped through slog.Default.
func ToStdLogger(l Logger, level Level) *stdlog.Logger {
	if bl, ok := l.(*BaseLogger); ok {
		return slog.NewLogLogger(bl.handler, toSlogLevel(level))
	}
	return slog.NewLogLogger(slog.Default().Handler(), toSlogLevel(level))
}

// RedirectStdLog sends output of the standard library's global logger to l
// at info level.
func RedirectStdLog(l Logger) {
	std := ToStdLogger(l, InfoLevel)
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(std.Writer())
}
