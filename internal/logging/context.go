package logging

import (
	"context"
	"log/slog"

	"sprocket/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for invocation identifiers.
	FieldRunID = "run_id"
	// FieldOperation is the standardized structured logging key for operation names.
	FieldOperation = "operation"
	// FieldInput is the standardized structured logging key for source media paths.
	FieldInput = "input"
	// FieldOutput is the standardized structured logging key for destination paths.
	FieldOutput = "output"
	// FieldBinary is the standardized structured logging key for external tool paths.
	FieldBinary = "binary"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if op, ok := services.OperationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOperation, op))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
