package app

import "go.uber.org/zap"

// NewLogger builds the process logger: development (console, debug level)
// or production (JSON, info level).
func NewLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
