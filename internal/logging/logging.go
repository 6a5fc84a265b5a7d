// Package logging builds the zap logger shared by the CLI and the
// orchestrator. Diagnostics go to stderr so they never mix with the
// operator-facing output on stdout.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger. Without verbose only warnings and errors
// are emitted; with verbose every state transition is visible.
func New(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = !verbose
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
