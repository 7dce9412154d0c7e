// Package logging provides the package-level structured logger used
// across ingest and search. Callers that don't configure one get a
// no-op logger, so library use never forces output on a consumer.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// SetLogger installs l as the package-wide logger. Passing nil restores
// the no-op default.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l
}

// Get returns the currently installed logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
