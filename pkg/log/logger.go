package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

// SetupLogger installs a JSON slog handler on os.Stdout as the slog default.
// Error attributes get a stacktrace attribute through ErrFmtHandler.
func SetupLogger(loglevel string) {
	slog.SetDefault(slog.New(newJSONHandler(os.Stdout, ToLogLevel(loglevel))))
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	return WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
}

// ToLogLevel panics on unknown level names; callers validate user input with ParseLevel first.
func ToLogLevel(level string) slog.Level {
	l, ok := ParseLevel(level)
	if !ok {
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
	return slog.Level(l)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewJSONLogger returns a SlogLogger writing JSON lines to w.
func NewJSONLogger(w io.Writer, level Level) *SlogLogger {
	return &SlogLogger{logger: slog.New(newJSONHandler(w, slog.Level(level)))}
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.logger.Debug(msg, slogArgs(fields)...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.logger.Info(msg, slogArgs(fields)...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.logger.Warn(msg, slogArgs(fields)...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.logger.Error(msg, slogArgs(fields)...) }

func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{logger: s.logger.With(slogArgs(fields)...)}
}

func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger.Enabled(ctx, slog.Level(level))
}

// RouteWarnings sends errors.Warn output through this logger at warn level.
func (s *SlogLogger) RouteWarnings() {
	errors.SetZerologWarnFunc(func(w error) {
		s.logger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
	})
}

func slogArgs(fields []any) []any {
	err, rest := leadingError(fields)
	if err == nil {
		return rest
	}
	return append([]any{ErrAttr(err)}, rest...)
}

// leadingError splits off an error passed as the first of an odd number of fields.
func leadingError(fields []any) (error, []any) {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			return err, fields[1:]
		}
	}
	return nil, fields
}
