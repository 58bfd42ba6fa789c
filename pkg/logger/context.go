package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey string

const entryKey contextKey = "logger"

// WithContext stores a request-scoped log entry in the context
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, entryKey, entry)
}

// FromContext returns the request-scoped log entry, or a bare entry of the given logger
func (l *Logger) FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(entryKey).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(l.Logger)
}
