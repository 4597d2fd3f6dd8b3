package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls the console and file sinks.
type Options struct {
	ConsoleLevel string
	FileLevel    string
	// File enables the file sink when non-empty.
	File     string
	Encoding string
}

// NewLogger builds a zap logger writing to stdout and, optionally, a log file.
// Each sink has its own level; unknown levels fall back to info. The returned
// cleanup closes the log file and is never nil.
func NewLogger(opts Options) (*zap.Logger, func(), error) {
	encoder := newEncoder(opts.Encoding)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), parseLevel(opts.ConsoleLevel)),
	}
	cleanup := func() {}

	if path := strings.TrimSpace(opts.File); path != "" {
		sink, closeSink, err := zap.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoder, sink, parseLevel(opts.FileLevel)))
		cleanup = closeSink
	}

	return zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(zapcore.Lock(os.Stderr))), cleanup, nil
}

func parseLevel(raw string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(strings.ToLower(strings.TrimSpace(raw))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func newEncoder(encoding string) zapcore.Encoder {
	if strings.EqualFold(strings.TrimSpace(encoding), "json") {
		return zapcore.NewJSONEncoder(encoderConfig())
	}
	return zapcore.NewConsoleEncoder(encoderConfig())
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.UTC().Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
