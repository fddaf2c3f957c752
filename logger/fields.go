package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging.
const (
	FieldRequestID = "request_id"
	FieldClientID  = "client_id"
	FieldComponent = "component"

	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldQuery     = "query"

	FieldDurationMS = "duration_ms"

	FieldError     = "error"
	FieldErrorType = "error_type"

	FieldCount = "count"
	FieldNodes = "nodes"
	FieldEdges = "edges"

	FieldFile    = "file"
	FieldAddress = "address"
	FieldPort    = "port"

	// Graph vocabulary
	FieldArtist = "artist"
	FieldFocus  = "focus"
	FieldDepth  = "depth"
	FieldEra    = "era"
	FieldGenre  = "genre"
	FieldFrom   = "from"
	FieldTo     = "to"
)

type contextKey string

const (
	requestIDKey contextKey = "logger_request_id"
	clientIDKey  contextKey = "logger_client_id"
	componentKey contextKey = "logger_component"
)

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithClientID adds a websocket client ID to the context for logging
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if clientID, ok := ctx.Value(clientIDKey).(string); ok && clientID != "" {
		fields = append(fields, FieldClientID, clientID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns base enriched with the fields carried by ctx.
func LoggerFromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
//	type Server struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Server {
//	    return &Server{logger: logger.ComponentLogger("server")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
