package store

import (
	"sync"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the store package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the store package's logger.
// This must be called before any store is opened.
func SetLogger(l *zap.Logger) {
	logger = l
}

var _ pebble.Logger = pebbleLogger{}

// pebbleLogger routes pebble's own log output to the package logger.
type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	Logger().Sugar().Infof(format, args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	Logger().Sugar().Errorf(format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	Logger().Sugar().Fatalf(format, args...)
}
