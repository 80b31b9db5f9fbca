package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"tracker/internal/config"
	"tracker/internal/constants"
	"tracker/internal/logger"
	"tracker/pkg/bootstrap"
	"tracker/pkg/event"
	"tracker/pkg/logging"
	"tracker/pkg/metrics"
)

type App struct {
	*bootstrap.Base
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	if sugaredLogger, ok := log.(*logger.SugaredLogger); ok {
		sugaredLogger.SetNamespace(cfg.Tracker.Namespace)
	}
	return &App{
		Base: bootstrap.NewBase(cfg, log),
	}
}

func (a *App) Initialize() error {
	metrics.Register(prometheus.DefaultRegisterer)

	if err := a.InitBroker(os.Stdout); err != nil {
		return fmt.Errorf("failed to initialize broker: %w", err)
	}

	if err := a.InitTracing(constants.TracerName); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := a.InitTracker(); err != nil {
		return fmt.Errorf("failed to initialize tracker: %w", err)
	}

	return nil
}

func (a *App) Track(ctx context.Context, ev event.Event) (string, error) {
	return a.Tracker.Track(ctx, ev)
}

// runTrack loads the configuration, tracks ev and shuts everything down.
func runTrack(cmd *cobra.Command, ev event.Event) error {
	earlyLog := logging.NewEarlyLogTo(cmd.ErrOrStderr())

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
		if configFile == "" {
			earlyLog.Error("Config file is required. Use --config flag or CONFIG_FILE environment variable")
			return fmt.Errorf("config file is required")
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		earlyLog.Error("Failed to load config: %v", err)
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		earlyLog.Error("Failed to init logger: %v", err)
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := NewApp(cfg, log)
	if err := app.Initialize(); err != nil {
		log.ErrorwCtx(ctx, "Failed to initialize application", "error", err)
		_ = app.shutdown()
		return err
	}

	id, trackErr := app.Track(ctx, ev)
	if trackErr == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), id)
	}

	if err := app.shutdown(); err != nil {
		log.ErrorwCtx(ctx, "Shutdown finished with errors", "error", err)
		if trackErr == nil {
			return err
		}
	}

	return trackErr
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return a.Shutdown(ctx)
}
