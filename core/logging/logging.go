// Package logging provides zap loggers whose verbosity is configured per package.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// root writes JSON entries to stderr; per-package filtering happens in New.
var root = zap.New(zapcore.NewCore(
	zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	zapcore.Lock(os.Stderr),
	zap.DebugLevel,
))

// New returns the logger of a package.
// Entries below Level(pkg) are discarded; the level may change later through ApplyAssignments.
//
//	var logger = logging.New("ber")
func New(pkg string) *zap.Logger {
	return root.Named(pkg).WithOptions(zap.IncreaseLevel(Level(pkg)))
}

// Sync flushes the root logger.
func Sync() {
	_ = root.Sync()
}
