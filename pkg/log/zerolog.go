package log

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

// ZerologLogger implements Logger on top of zerolog.
// It is the logger used by the command line tool.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{
		logger: zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger returns a ZerologLogger with zerolog's console formatting.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	return NewZerologLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}, level)
}

func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields)
}

func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, fields ...any) {
	z.emit(z.logger.Error(), msg, fields)
}

func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	err, rest := leadingError(fields)
	if err != nil {
		ctx = ctx.AnErr(ErrAttrKey, err)
	}
	for i := 0; i < len(rest)-1; i += 2 {
		ctx = ctx.Interface(fmt.Sprint(rest[i]), rest[i+1])
	}
	return &ZerologLogger{logger: ctx.Logger()}
}

func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.logger.GetLevel() <= zerologLevel(level)
}

// RouteWarnings sends errors.Warn output through this logger at warn level.
// Warnings that implement zerolog.LogObjectMarshaler are embedded as fields.
func (z *ZerologLogger) RouteWarnings() {
	errors.SetZerologWarnFunc(func(w error) {
		ev := z.logger.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}

func (z *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	err, rest := leadingError(fields)
	if err != nil {
		ev = ev.AnErr(ErrAttrKey, err)
		var typed zerolog.LogObjectMarshaler
		if errors.As(err, &typed) {
			ev = ev.Object("detail", typed)
		}
	}
	for i := 0; i < len(rest)-1; i += 2 {
		key := fmt.Sprint(rest[i])
		switch v := rest[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case zerolog.LogObjectMarshaler:
			ev = ev.Object(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}

func zerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
