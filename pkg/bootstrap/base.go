package bootstrap

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"tracker/internal/broker"
	"tracker/internal/config"
	"tracker/internal/globalcontexts"
	"tracker/internal/logger"
	"tracker/internal/tracker"
	"tracker/pkg/tracing"
)

// Base wires the pieces every tracker process needs, in dependency order:
// broker, tracing, then the tracker itself.
type Base struct {
	Config         *config.Config
	Logger         logger.Logger
	Producer       broker.Producer
	TracerProvider *tracing.TracerProvider
	Tracker        *tracker.Tracker
}

func NewBase(cfg *config.Config, log logger.Logger) *Base {
	return &Base{
		Config: cfg,
		Logger: log,
	}
}

func (b *Base) InitBroker(out io.Writer) error {
	producer, err := broker.NewProducer(b.Config, out, b.Logger)
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}

	b.Producer = producer
	return nil
}

func (b *Base) InitTracing(serviceName string) error {
	tp, err := tracing.Init(b.Config.Tracing, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	b.TracerProvider = tp
	return nil
}

func (b *Base) InitTracker() error {
	if b.Producer == nil {
		return fmt.Errorf("broker must be initialized before the tracker")
	}

	globals, err := globalcontexts.New(b.Config.GlobalContexts, b.Logger)
	if err != nil {
		return fmt.Errorf("failed to load global contexts: %w", err)
	}

	t, err := tracker.New(b.Config.Tracker, b.Producer, b.Logger, tracker.WithGlobalContexts(globals))
	if err != nil {
		return fmt.Errorf("failed to create tracker: %w", err)
	}

	b.Logger.Infow("Tracker initialized",
		"namespace", b.Config.Tracker.Namespace,
		"topic", b.Config.Tracker.Topic,
		"global_contexts", globals.Len(),
	)

	b.Tracker = t
	return nil
}

func (b *Base) Shutdown(ctx context.Context) error {
	b.Logger.Info("Shutting down tracker...")

	var errs error

	if b.Producer != nil {
		if err := b.Producer.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("producer close error: %w", err))
		}
	}

	if b.TracerProvider != nil {
		if err := b.TracerProvider.Shutdown(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tracer provider shutdown error: %w", err))
		}
	}

	if errs != nil {
		return fmt.Errorf("shutdown errors: %w", errs)
	}

	b.Logger.Info("Tracker exited successfully")
	return nil
}
