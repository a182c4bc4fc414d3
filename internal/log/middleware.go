package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// Middleware creates HTTP middleware that adds a logger to the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Add logger to request context
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// ComponentMiddleware creates middleware that adds component context to the logger
func ComponentMiddleware(component string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get logger from context and add component
			logger := FromContext(r.Context()).WithComponent(component)

			// Update context with component logger
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds request ID to logger context
func RequestIDMiddleware(extractRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := extractRequestID(r)

			// Get logger from context and add request ID
			logger := FromContext(r.Context()).With(FieldRequestID, requestID)

			// Update context with enriched logger
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// loggerFor prefers the request-scoped logger carried by ctx.
func (sl *StructuredLogger) loggerFor(ctx context.Context, component string) *Logger {
	if l, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return l.WithComponent(component)
	}
	return sl.logger.WithComponent(component)
}

// LogViewComputed logs a filtered and sorted table view
func (sl *StructuredLogger) LogViewComputed(ctx context.Context, search, category, column, direction string, rows int, cacheHit bool) {
	fields := NewFields().
		WithView(search, category, column, direction).
		WithOperation(OpFilter).
		ToSlice()

	fields = append(fields, FieldRows, rows, FieldCacheHit, cacheHit)

	sl.loggerFor(ctx, ComponentLedger).DebugContext(ctx, "Transaction view computed", fields...)
}

// LogCorrection logs a query parameter that was replaced by a valid value
func (sl *StructuredLogger) LogCorrection(ctx context.Context, param, got, used string) {
	fields := NewFields().
		WithCorrection(param, got, used).
		WithOperation(OpParse)

	sl.loggerFor(ctx, ComponentLedger).WarnContext(ctx, "Query parameter normalized", fields.ToSlice()...)
}

// LogError logs an error with structured context under the given component
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)
	delete(allFields, FieldComponent)

	sl.loggerFor(ctx, component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
