package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a process logger
type Options struct {
	Level  string // debug, info, warn, error, dpanic, panic, fatal
	Format string // json or console
	// Component is attached to every entry, e.g. "server" or "seed-community"
	Component string
	Output    io.Writer // defaults to stdout
}

var current *zap.Logger

// Init builds the process logger and remembers it for Sync
func Init(opts Options) (*zap.Logger, error) {
	lvl := zap.InfoLevel
	if err := lvl.Set(strings.ToLower(opts.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "json":
		enc = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	zopts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if opts.Component != "" {
		zopts = append(zopts, zap.Fields(zap.String("component", opts.Component)))
	}

	current = zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), lvl), zopts...)
	return current, nil
}

// Sync flushes the logger built by Init
func Sync() {
	if current != nil {
		_ = current.Sync()
	}
}
