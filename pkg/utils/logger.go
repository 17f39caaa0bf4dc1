// Package utils holds small helpers shared by the doctext commands.
package utils

import "go.uber.org/zap"

// NewLogger returns a zap logger writing to stderr, leaving stdout to extracted text and
// status lines. When debug is true, uses development config (human-readable, debug level);
// otherwise uses production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
