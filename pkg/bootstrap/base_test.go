package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tracker/internal/config"
	"tracker/internal/logger"
	"tracker/pkg/event"
)

func testConfig() *config.Config {
	return &config.Config{
		Tracker: config.TrackerConfig{
			Namespace:   "cli",
			AppID:       "bootstrap-test",
			Platform:    "srv",
			Concurrency: 1,
			Topic:       "events",
		},
		Broker: config.BrokerConfig{Type: "log"},
		GlobalContexts: []config.GlobalContextConfig{
			{
				Schema: "iglu:com.acme/env/jsonschema/1-0-0",
				Data:   map[string]interface{}{"stage": "test"},
			},
		},
	}
}

func TestBaseLifecycle(t *testing.T) {
	var out bytes.Buffer
	b := NewBase(testConfig(), logger.NopLogger())

	require.NoError(t, b.InitBroker(&out))
	require.NoError(t, b.InitTracing("tracker-test"))
	require.NoError(t, b.InitTracker())

	ev, err := event.NewConsentGranted("2026-01-01", "doc-1", "1-0-0")
	require.NoError(t, err)

	id, err := b.Tracker.Track(context.Background(), ev)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var line struct {
		Topic string `json:"topic"`
		Event struct {
			EventID  string `json:"event_id"`
			Schema   string `json:"schema"`
			Contexts []struct {
				Schema string `json:"schema"`
			} `json:"contexts"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "events", line.Topic)
	assert.Equal(t, id, line.Event.EventID)
	assert.Equal(t, event.SchemaConsentGranted, line.Event.Schema)
	require.Len(t, line.Event.Contexts, 2)
	assert.Equal(t, event.SchemaConsentDocument, line.Event.Contexts[0].Schema)
	assert.Equal(t, "iglu:com.acme/env/jsonschema/1-0-0", line.Event.Contexts[1].Schema)

	require.NoError(t, b.Shutdown(context.Background()))
}

func TestInitTrackerLogsGlobalContexts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := NewBase(testConfig(), logger.NewWithCore(core))

	require.NoError(t, b.InitBroker(&bytes.Buffer{}))
	require.NoError(t, b.InitTracker())

	entries := logs.FilterMessage("Tracker initialized").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["global_contexts"])
	assert.Equal(t, "cli", entries[0].ContextMap()["namespace"])
}

func TestInitTrackerRequiresBroker(t *testing.T) {
	b := NewBase(testConfig(), logger.NopLogger())
	assert.Error(t, b.InitTracker())
}

func TestInitBrokerUnknownType(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.Type = "carrier-pigeon"

	b := NewBase(cfg, logger.NopLogger())
	assert.Error(t, b.InitBroker(&bytes.Buffer{}))
}

func TestInitTrackerBadFilter(t *testing.T) {
	cfg := testConfig()
	cfg.GlobalContexts[0].Filter = "schema +"

	b := NewBase(cfg, logger.NopLogger())
	require.NoError(t, b.InitBroker(&bytes.Buffer{}))
	assert.Error(t, b.InitTracker())
}
