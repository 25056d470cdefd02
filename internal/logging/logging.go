package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger. mode "production" selects JSON output; anything else
// selects the development console encoder. A non-empty file adds a rolling file sink.
func New(mode, file string) (*zap.Logger, error) {
	if file == "" {
		var cfg zap.Config
		if mode == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.OutputPaths = []string{"stdout"}
		return cfg.Build(zap.AddCaller())
	}

	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if mode == "production" {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
		consoleEnc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	rolling := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    64,
		MaxAge:     14,
		MaxBackups: 7,
		Compress:   true,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEnc, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rolling), level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
