package logging

import (
	"context"
)

type ctxKey string

const (
	EventIDKey   ctxKey = "event_id"
	NamespaceKey ctxKey = "namespace"
	SchemaKey    ctxKey = "schema"
	TraceIDKey   ctxKey = "trace_id"
)

func WithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, EventIDKey, eventID)
}

func WithNamespace(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, NamespaceKey, namespace)
}

func WithSchema(ctx context.Context, schema string) context.Context {
	return context.WithValue(ctx, SchemaKey, schema)
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func GetEventID(ctx context.Context) string {
	return getString(ctx, EventIDKey)
}

func GetNamespace(ctx context.Context) string {
	return getString(ctx, NamespaceKey)
}

func GetSchema(ctx context.Context) string {
	return getString(ctx, SchemaKey)
}

func GetTraceID(ctx context.Context) string {
	return getString(ctx, TraceIDKey)
}

func getString(ctx context.Context, key ctxKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func GetLogFields(ctx context.Context) []interface{} {
	fields := make([]interface{}, 0, 8)

	if eventID := GetEventID(ctx); eventID != "" {
		fields = append(fields, string(EventIDKey), eventID)
	}

	if namespace := GetNamespace(ctx); namespace != "" {
		fields = append(fields, string(NamespaceKey), namespace)
	}

	if schema := GetSchema(ctx); schema != "" {
		fields = append(fields, string(SchemaKey), schema)
	}

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, string(TraceIDKey), traceID)
	}

	return fields
}
