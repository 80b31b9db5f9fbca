package models

import (
	"time"

	"tracker/pkg/payload"
)

type TrackedEventBuilder struct {
	event *TrackedEvent
}

func NewTrackedEventBuilder() *TrackedEventBuilder {
	return &TrackedEventBuilder{
		event: &TrackedEvent{
			Data:     make(map[string]interface{}),
			Contexts: make([]payload.SelfDescribing, 0),
		},
	}
}

func (b *TrackedEventBuilder) WithEventID(id string) *TrackedEventBuilder {
	b.event.EventID = id
	return b
}

func (b *TrackedEventBuilder) WithNamespace(namespace string) *TrackedEventBuilder {
	b.event.Namespace = namespace
	return b
}

func (b *TrackedEventBuilder) WithAppID(appID string) *TrackedEventBuilder {
	b.event.AppID = appID
	return b
}

func (b *TrackedEventBuilder) WithPlatform(platform string) *TrackedEventBuilder {
	b.event.Platform = platform
	return b
}

func (b *TrackedEventBuilder) WithTrackerVersion(version string) *TrackedEventBuilder {
	b.event.TrackerVersion = version
	return b
}

func (b *TrackedEventBuilder) WithTimestamp(timestamp time.Time) *TrackedEventBuilder {
	b.event.Timestamp = timestamp
	return b
}

func (b *TrackedEventBuilder) WithTrueTimestamp(timestamp time.Time) *TrackedEventBuilder {
	ts := timestamp
	b.event.TrueTimestamp = &ts
	return b
}

func (b *TrackedEventBuilder) WithSchema(schema string) *TrackedEventBuilder {
	b.event.Schema = schema
	return b
}

func (b *TrackedEventBuilder) WithData(data map[string]interface{}) *TrackedEventBuilder {
	b.event.Data = data
	return b
}

func (b *TrackedEventBuilder) WithContexts(contexts ...payload.SelfDescribing) *TrackedEventBuilder {
	b.event.Contexts = append(b.event.Contexts, contexts...)
	return b
}

func (b *TrackedEventBuilder) Build() *TrackedEvent {
	if b.event.Timestamp.IsZero() {
		b.event.Timestamp = time.Now().UTC()
	}
	if b.event.Data == nil {
		b.event.Data = make(map[string]interface{})
	}
	return b.event
}
