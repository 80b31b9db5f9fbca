// Package tracker is the processing entry point for events: it runs each
// event's pre-emission hook, assembles the envelope and hands it to a
// producer.
package tracker

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"tracker/internal/broker"
	"tracker/internal/config"
	"tracker/internal/constants"
	"tracker/internal/globalcontexts"
	"tracker/internal/logger"
	"tracker/pkg/cel"
	"tracker/pkg/errors"
	"tracker/pkg/event"
	"tracker/pkg/logging"
	"tracker/pkg/metrics"
	"tracker/pkg/models"
	"tracker/pkg/payload"
	"tracker/pkg/tracing"
)

type Tracker struct {
	cfg      config.TrackerConfig
	producer broker.Producer
	globals  *globalcontexts.Registry
	logger   logger.Logger
	tracer   trace.Tracer
	version  string
	now      func() time.Time
	newID    func() string
}

type Option func(*Tracker)

func WithGlobalContexts(r *globalcontexts.Registry) Option {
	return func(t *Tracker) {
		t.globals = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) {
		t.newID = newID
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(t *Tracker) {
		t.tracer = tracer
	}
}

func New(cfg config.TrackerConfig, producer broker.Producer, log logger.Logger, opts ...Option) (*Tracker, error) {
	if cfg.Namespace == "" {
		return nil, errors.InvalidArgument("namespace", "tracker namespace cannot be empty")
	}
	if producer == nil {
		return nil, errors.InvalidArgument("producer", "producer cannot be nil")
	}
	if cfg.Topic == "" {
		cfg.Topic = constants.DefaultTopic
	}
	if cfg.Platform == "" {
		cfg.Platform = constants.DefaultPlatform
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = constants.DefaultConcurrency
	}

	t := &Tracker{
		cfg:      cfg,
		producer: producer,
		logger:   log,
		tracer:   tracing.GetTracer(constants.TracerName),
		version:  trackerVersion(cfg.VersionSuffix),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.globals == nil {
		t.globals, _ = globalcontexts.New(nil, log)
	}

	return t, nil
}

func (t *Tracker) Namespace() string {
	return t.cfg.Namespace
}

func (t *Tracker) AppID() string {
	return t.cfg.AppID
}

// Track processes ev and emits it, returning the generated event id. The
// event must not be modified after it is handed over, and it can be tracked
// only once.
func (t *Tracker) Track(ctx context.Context, ev event.Event) (string, error) {
	if ev == nil {
		return "", errors.InvalidArgument("event", "event cannot be nil")
	}

	start := time.Now()
	eventID := t.newID()

	ctx = logging.WithEventID(ctx, eventID)
	ctx = logging.WithNamespace(ctx, t.cfg.Namespace)
	ctx, span := t.tracer.Start(ctx, "tracker.track", trace.WithAttributes(
		tracing.AttrEventID.String(eventID),
		tracing.AttrNamespace.String(t.cfg.Namespace),
	))
	defer span.End()
	if traceID := tracing.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
	}

	tracked, status, err := t.process(ctx, eventID, ev)
	if err == nil {
		ctx = logging.WithSchema(ctx, tracked.Schema)
		span.SetAttributes(
			tracing.AttrEventSchema.String(tracked.Schema),
			tracing.AttrContextsCount.Int(len(tracked.Contexts)),
		)

		if pubErr := t.producer.Publish(ctx, t.cfg.Topic, *tracked); pubErr != nil {
			status = constants.StatusFailed
			err = errors.Wrap(pubErr, errors.ErrEmitFailed)
		}
	}

	schema := schemaOf(ev, tracked)
	metrics.IncEventsTracked(schema, status)
	metrics.ObserveTrackDuration(time.Since(start), status)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		t.logger.ErrorwCtx(ctx, "Event dropped",
			"status", status,
			"error_code", errors.Code(err),
			"error", err,
		)
		return "", err
	}

	metrics.ObserveContextsAttached(tracked.Schema, len(tracked.Contexts))
	t.logger.DebugwCtx(ctx, "Event tracked",
		"topic", t.cfg.Topic,
		"contexts_count", len(tracked.Contexts),
		"context_schemas", tracked.ContextSchemas(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return eventID, nil
}

type processedMarker interface {
	MarkProcessed() bool
}

// process runs the hook and reads the event into an envelope. Anything that
// goes wrong here is confined to this one event.
func (t *Tracker) process(ctx context.Context, eventID string, ev event.Event) (tracked *models.TrackedEvent, status string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.RecoverPanicWithCallback(r, func(perr error) {
				t.logger.ErrorwCtx(ctx, "Panic recovered while processing event", "error", perr)
			})
			tracked = nil
			status = constants.StatusPanicked
		}
	}()

	if m, ok := ev.(processedMarker); ok && !m.MarkProcessed() {
		return nil, constants.StatusInvalid, errors.InvalidArgument("event", "event has already been tracked")
	}

	ev.BeginProcessing(t)

	schema := ev.Schema()
	data := ev.DataPayload()
	contexts := ev.Contexts()

	contexts = append(contexts, t.globals.Apply(ctx, cel.Input{
		Schema:    schema,
		Data:      data,
		Namespace: t.cfg.Namespace,
		Contexts:  schemasOf(contexts),
	})...)

	if t.cfg.ValidateSchemas {
		if err := validateSchemas(schema, contexts); err != nil {
			return nil, constants.StatusInvalid, err
		}
	}

	b := models.NewTrackedEventBuilder().
		WithEventID(eventID).
		WithNamespace(t.cfg.Namespace).
		WithAppID(t.cfg.AppID).
		WithPlatform(t.cfg.Platform).
		WithTrackerVersion(t.version).
		WithTimestamp(t.now()).
		WithSchema(schema).
		WithData(data).
		WithContexts(contexts...)
	if ts, ok := ev.TrueTimestamp(); ok {
		b.WithTrueTimestamp(ts)
	}
	tracked = b.Build()

	if err := models.ValidateTrackedEvent(tracked); err != nil {
		return nil, constants.StatusInvalid, errors.Wrap(err, errors.ErrInvalidArgument)
	}

	return tracked, constants.StatusSuccess, nil
}

// Result is the outcome of one event in TrackAll.
type Result struct {
	EventID string
	Err     error
}

// TrackAll tracks independent events concurrently, bounded by the configured
// concurrency. A failing event does not stop the others; the returned error
// combines every failure and results keep the order of events.
func (t *Tracker) TrackAll(ctx context.Context, events ...event.Event) ([]Result, error) {
	results := make([]Result, len(events))

	var g errgroup.Group
	g.SetLimit(t.cfg.Concurrency)

	for i, ev := range events {
		g.Go(func() error {
			id, err := t.Track(ctx, ev)
			results[i] = Result{EventID: id, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	for i, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("event %d: %w", i, r.Err))
		}
	}

	return results, errs
}

func (t *Tracker) Close() error {
	return t.producer.Close()
}

var versionSuffixDisallowed = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// trackerVersion appends the sanitised suffix, if any, to the library
// version so wrapping integrations can identify themselves.
func trackerVersion(suffix string) string {
	suffix = versionSuffixDisallowed.ReplaceAllString(suffix, "")
	if suffix == "" {
		return constants.TrackerVersion
	}
	return constants.TrackerVersion + " " + suffix
}

func validateSchemas(schema string, contexts []payload.SelfDescribing) error {
	if err := payload.ValidateSchemaURI(schema); err != nil {
		return err
	}
	for _, c := range contexts {
		if err := payload.ValidateSchemaURI(c.Schema()); err != nil {
			return err
		}
	}
	return nil
}

func schemasOf(contexts []payload.SelfDescribing) []string {
	out := make([]string, 0, len(contexts))
	for _, c := range contexts {
		out = append(out, c.Schema())
	}
	return out
}

// schemaOf labels metrics without calling back into an event whose hook
// may have panicked.
func schemaOf(ev event.Event, tracked *models.TrackedEvent) string {
	if tracked != nil {
		return tracked.Schema
	}
	return fmt.Sprintf("%T", ev)
}
