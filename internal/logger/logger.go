package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ParseLevel maps general.log_level onto a zap level. Unknown values fall back
// to info.
func ParseLevel(value string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// NewCore builds a JSON zap core writing to sink.
func NewCore(level string, sink zapcore.WriteSyncer) zapcore.Core {
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(sink),
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)
}

// NewHandler returns a slog handler backed by a zap core on stderr.
func NewHandler(level string) slog.Handler {
	return zapslog.NewHandler(NewCore(level, os.Stderr), zapslog.WithCaller(true))
}

// Setup installs the zap backed handler as the process wide slog default.
func Setup(level string) *slog.Logger {
	l := slog.New(NewHandler(level))
	slog.SetDefault(l)
	return l
}
