package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	JSON  bool
	Debug bool
	// Output lists zap sink paths. Defaults to stderr so that command
	// output on stdout stays clean.
	Output []string
}

// New builds a zap logger with console or JSON encoding.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if opts.JSON {
		encoding = "json"
	}

	if opts.Debug {
		level = zapcore.DebugLevel
	}

	output := opts.Output
	if len(output) == 0 {
		output = []string{"stderr"}
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      output,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Truncate shortens s to limit runes, appending an ellipsis when truncated.
// Candidate utterances pass through it before they are logged.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
