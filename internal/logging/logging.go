// Package logging bridges the instance log callback onto zap, so runs
// driven from the CLI get structured output while embedded importers keep
// supplying their own callback.
package logging

import (
	"sync"

	"go.uber.org/zap"

	"github.com/san-kum/gofmi/internal/fmi"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	mu         sync.Mutex
)

// Logger returns the process-wide logger, a no-op unless SetLogger ran.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the process-wide logger. Call once at startup.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Callback returns a log callback that forwards instance diagnostics to
// the given logger at a level matching the status.
func Callback(l *zap.Logger, instanceName string) fmi.LogCallback {
	sugar := l.Sugar().With("instance", instanceName)
	return func(status fmi.Status, category fmi.Category, message string) {
		entry := sugar.With("category", string(category))
		switch status {
		case fmi.StatusOK:
			entry.Debug(message)
		case fmi.StatusWarning, fmi.StatusDiscard:
			entry.Warn(message)
		default:
			entry.Error(message)
		}
	}
}
