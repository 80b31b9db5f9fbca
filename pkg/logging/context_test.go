package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogFieldsEmpty(t *testing.T) {
	assert.Empty(t, GetLogFields(context.Background()))
}

func TestGetLogFields(t *testing.T) {
	ctx := WithEventID(context.Background(), "e-1")
	ctx = WithNamespace(ctx, "web")
	ctx = WithSchema(ctx, "iglu:com.acme/e/jsonschema/1-0-0")

	assert.Equal(t, []interface{}{
		"event_id", "e-1",
		"namespace", "web",
		"schema", "iglu:com.acme/e/jsonschema/1-0-0",
	}, GetLogFields(ctx))
}

func TestPlainStringKeyDoesNotCollide(t *testing.T) {
	ctx := context.WithValue(context.Background(), "event_id", "other") //nolint:staticcheck
	assert.Empty(t, GetEventID(ctx))
}

func TestEarlyLog(t *testing.T) {
	var buf strings.Builder
	l := NewEarlyLogTo(&buf)

	l.Error("failed to load config: %v", "missing file")
	l.Info("starting")

	assert.Equal(t, "ERROR: failed to load config: missing file\nINFO: starting\n", buf.String())
}
