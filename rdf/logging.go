package rdf

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// The package logs nothing by default. Applications that want to see
// datatype rebind warnings and conversion failures install their own logger.
var pkgLogger atomic.Pointer[zap.Logger]

func init() {
	pkgLogger.Store(zap.NewNop())
}

// SetLogger installs the logger used by this package. Passing nil restores
// the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger.Store(l)
}

func logger() *zap.Logger {
	return pkgLogger.Load()
}
