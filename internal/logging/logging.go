// Package logging constructs the zap logger shared by the CLI and by
// pipeline instrumentation wrapping each compilation. The core pipeline
// packages (syntax, semantic, codegen) never import this package: they
// stay logging-free per §5's "no host-visible side effects" guarantee.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded zap logger. verbose lowers the level to
// debug; otherwise only info-and-above records are emitted.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
