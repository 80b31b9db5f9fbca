// Package event defines the events a tracker can process: each one names its
// schema, produces its own data payload and may attach context documents in
// a pre-emission hook.
package event

import (
	"sync/atomic"
	"time"

	"tracker/pkg/payload"
)

// Handle is what an event sees of the tracker processing it.
type Handle interface {
	Namespace() string
	AppID() string
}

// Event is implemented by every trackable event. BeginProcessing is invoked
// at most once per instance, before Schema, DataPayload and Contexts are read
// for emission.
type Event interface {
	Schema() string
	DataPayload() map[string]interface{}
	BeginProcessing(h Handle)

	AppendContext(ctx payload.SelfDescribing)
	Contexts() []payload.SelfDescribing
	TrueTimestamp() (time.Time, bool)
}

// Base holds the state shared by all events. Embed it to get an append-only
// context list and a no-op BeginProcessing.
type Base struct {
	contexts      []payload.SelfDescribing
	trueTimestamp time.Time
	processed     atomic.Bool
}

func (b *Base) BeginProcessing(Handle) {}

func (b *Base) AppendContext(ctx payload.SelfDescribing) {
	b.contexts = append(b.contexts, ctx)
}

// Contexts returns a copy of the attached contexts; it is never nil.
func (b *Base) Contexts() []payload.SelfDescribing {
	out := make([]payload.SelfDescribing, len(b.contexts))
	copy(out, b.contexts)
	return out
}

// SetTrueTimestamp records when the event actually happened, if that differs
// from the time it is tracked.
func (b *Base) SetTrueTimestamp(ts time.Time) {
	b.trueTimestamp = ts
}

func (b *Base) TrueTimestamp() (time.Time, bool) {
	return b.trueTimestamp, !b.trueTimestamp.IsZero()
}

// MarkProcessed reports whether this is the first time the event is handed
// to a tracker. Trackers use it to run BeginProcessing at most once.
func (b *Base) MarkProcessed() bool {
	return b.processed.CompareAndSwap(false, true)
}

var (
	_ Event = (*ConsentGranted)(nil)
	_ Event = (*ConsentWithdrawn)(nil)
	_ Event = (*SelfDescribing)(nil)
)
