package logger

import (
	"github.com/rs/zerolog"
)

// ZerologLogger implements the [Logger] interface by delegating to a
// [zerolog.Logger]. Args become event fields.
type ZerologLogger struct {
	logger zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerologLogger returns a new [ZerologLogger].
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Trace logs at the trace level.
func (l *ZerologLogger) Trace(msg string, args ...any) {
	emit(l.logger.Trace(), msg, args)
}

// Debug logs at the debug level.
func (l *ZerologLogger) Debug(msg string, args ...any) {
	emit(l.logger.Debug(), msg, args)
}

// Info logs at the info level.
func (l *ZerologLogger) Info(msg string, args ...any) {
	emit(l.logger.Info(), msg, args)
}

// Warn logs at the warn level.
func (l *ZerologLogger) Warn(msg string, args ...any) {
	emit(l.logger.Warn(), msg, args)
}

// Error logs at the error level.
func (l *ZerologLogger) Error(msg string, args ...any) {
	emit(l.logger.Error(), msg, args)
}

// ZerologLevel maps a [Level] onto the corresponding zerolog level.
func ZerologLevel(level Level) zerolog.Level {
	switch {
	case level >= LevelOff:
		return zerolog.Disabled
	case level >= LevelError:
		return zerolog.ErrorLevel
	case level >= LevelWarn:
		return zerolog.WarnLevel
	case level >= LevelInfo:
		return zerolog.InfoLevel
	case level >= LevelDebug:
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

// emit is a no-op for a nil event, which zerolog returns for disabled levels.
func emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			e.Interface("!BADKEY", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok {
			e.Interface("!BADKEY", args[i])
			continue
		}
		if err, ok := args[i+1].(error); ok {
			e.AnErr(key, err)
			continue
		}
		e.Interface(key, args[i+1])
	}
	e.Msg(msg)
}
