package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// setup builds the file-backed zap logger. Stdout belongs to the TUI, so all
// diagnostics go to ~/.lbman/lbman.log (or ./lbman.log if home is unknown).
func setup() {
	path := "lbman.log"
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".lbman")
		if err := os.MkdirAll(dir, 0700); err == nil {
			path = filepath.Join(dir, "lbman.log")
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	l, err := cfg.Build()
	if err != nil {
		// Keep the package usable even without a log file.
		l = zap.NewNop()
	}
	logger = l.Sugar()
}

func get() *zap.SugaredLogger {
	once.Do(setup)
	return logger
}

func LogDebug(format string, args ...interface{}) {
	get().Debugf(format, args...)
}

func LogError(format string, args ...interface{}) {
	get().Errorf(format, args...)
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
