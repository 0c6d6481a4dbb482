package main

import (
	"fmt"

	"github.com/toothbrush/jahia-dump/internal/logger"
	"go.uber.org/zap"
)

// newLogger builds the command logger once flags and config are bound, so --debug is honoured.
func newLogger() (*zap.SugaredLogger, error) {
	l, err := logger.New(Debug)
	if err != nil {
		return nil, fmt.Errorf("jahia-dump: %w", err)
	}
	return l.Named("jahia-dump"), nil
}
