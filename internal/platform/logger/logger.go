package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so every component shares one configured core.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

var (
	processLogger *Logger
	once          sync.Once
)

// NewLogger builds the process logger from the environment on first call
// and returns the same instance afterwards.
func NewLogger() *Logger {
	once.Do(func() {
		processLogger = build(DefaultConfig())
		processLogger.Info("Logger initialized",
			zap.String("level", processLogger.config.Level),
			zap.String("format", processLogger.config.Format),
		)
	})
	return processLogger
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &LoggerConfig{Level: "info", Format: "json", OutputFile: "stdout"}}
}

func build(cfg *LoggerConfig) *Logger {
	var zapConfig zap.Config
	if cfg.Level == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.ToZapLevel())

	zapConfig.OutputPaths = []string{cfg.OutputFile}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	if cfg.writesToFile() {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create log directory for %q, using stdout: %v\n", cfg.OutputFile, err)
			zapConfig.OutputPaths = []string{"stdout"}
		} else {
			zapConfig.OutputPaths = []string{cfg.OutputFile, "stdout"}
			zapConfig.ErrorOutputPaths = []string{cfg.OutputFile, "stderr"}
		}
	}

	if cfg.isConsole() {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig.Encoding = "json"
	}

	zl, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: custom zap config failed, falling back to production: %v\n", err)
		zl, _ = zap.NewProduction()
	}
	return &Logger{Logger: zl, config: cfg}
}

// Named adds a segment to the logger name, e.g. "ProductRepository".
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With attaches structured fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
