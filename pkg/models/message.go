package models

import (
	"time"

	"tracker/pkg/payload"
)

// TrackedEvent is the envelope handed to the emitter once an event has been
// processed.
type TrackedEvent struct {
	EventID        string                   `json:"event_id"`
	Namespace      string                   `json:"namespace"`
	AppID          string                   `json:"app_id,omitempty"`
	Platform       string                   `json:"platform,omitempty"`
	TrackerVersion string                   `json:"tracker_version,omitempty"`
	Timestamp      time.Time                `json:"timestamp"`
	TrueTimestamp  *time.Time               `json:"true_timestamp,omitempty"`
	Schema         string                   `json:"schema"`
	Data           map[string]interface{}   `json:"data"`
	Contexts       []payload.SelfDescribing `json:"contexts"`
}

func (ev *TrackedEvent) ContextSchemas() []string {
	schemas := make([]string, 0, len(ev.Contexts))
	for _, c := range ev.Contexts {
		schemas = append(schemas, c.Schema())
	}
	return schemas
}
