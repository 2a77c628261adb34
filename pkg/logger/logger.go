// Package logger builds the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New returns a production JSON logger, or a human-readable development
// logger for any other env value.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// WithRequestID returns a child logger tagged with the request id.
func WithRequestID(log *zap.Logger, requestID string) *zap.Logger {
	if requestID == "" {
		return log
	}
	return log.With(zap.String("request_id", requestID))
}
