package logging

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerName is attached to every entry emitted by the zap backend.
const LoggerName = "cognito-userpool-clients"

// NewProductionZap builds a JSON zap logger. debug lowers the level to Debug.
func NewProductionZap(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(levelFor(debug))
	config.Encoding = "json"
	config.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
	config.DisableStacktrace = true
	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.Named(LoggerName), nil
}

// NewConsoleZap builds a human-readable zap logger for interactive deploy output.
func NewConsoleZap(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(levelFor(debug))
	config.DisableStacktrace = true
	config.DisableCaller = !debug
	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.Named(LoggerName), nil
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

type zapLogger struct{ l *zap.Logger }

// NewZap adapts a zap logger to Logger. A nil zap logger yields a NopLogger.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return zapLogger{l: l}
}

func (z zapLogger) Debug(msg string, ctx Fields) { z.l.Debug(msg, zapFields(ctx)...) }
func (z zapLogger) Info(msg string, ctx Fields)  { z.l.Info(msg, zapFields(ctx)...) }
func (z zapLogger) Warn(msg string, ctx Fields)  { z.l.Warn(msg, zapFields(ctx)...) }
func (z zapLogger) Error(msg string, ctx Fields) { z.l.Error(msg, zapFields(ctx)...) }

// zapFields emits keys in sorted order so output is stable.
func zapFields(ctx Fields) []zap.Field {
	if len(ctx) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := ctx[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, ctx[k]))
	}
	return out
}
