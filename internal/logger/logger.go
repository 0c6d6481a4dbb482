// Package logger builds the zap logger shared by every jahia-dump command.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr.  Debug switches to zap's development settings,
// which lowers the level to debug and adds caller information.
func New(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = !debug
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: couldn't build zap logger: %w", err)
	}

	return l.Sugar(), nil
}

// Nop returns a logger which discards everything, for library callers that don't care.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
