package logger

import (
	"fmt"
	"strings"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// New builds the service logger from log_config. Format is json or console,
// output is stdout, stderr or a file path.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}

	encoding := strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch encoding {
	case "", "json":
		encoding = "json"
	case "console", "text":
		encoding = "console"
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	output := strings.TrimSpace(cfg.LogOutput)
	if output == "" {
		output = "stdout"
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
	}

	zcfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	return zcfg.Build()
}

// OrNop guards constructors that accept an optional logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
