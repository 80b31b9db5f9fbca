package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"

	"tracker/pkg/metrics"
)

func TestRatioTrip(t *testing.T) {
	trip := RatioTrip(3, 0.5)

	assert.False(t, trip(gobreaker.Counts{}))
	assert.False(t, trip(gobreaker.Counts{Requests: 2, TotalFailures: 2}))
	assert.True(t, trip(gobreaker.Counts{Requests: 4, TotalFailures: 2}))
	assert.False(t, trip(gobreaker.Counts{Requests: 4, TotalFailures: 1}))
}

func TestWrapperOpensAfterFailures(t *testing.T) {
	cfg := DefaultConfig("wrapper-test-open")
	cfg.Timeout = time.Minute
	w := NewWrapper(cfg)

	failure := errors.New("write failed")
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, w.Execute(context.Background(), func() error { return failure }), failure)
	}

	assert.True(t, w.IsOpen())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("wrapper-test-open")))

	called := false
	err := w.Execute(context.Background(), func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}

func TestWrapperSuccess(t *testing.T) {
	w := NewWrapper(DefaultConfig("wrapper-test-success"))

	assert.NoError(t, w.Execute(context.Background(), func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed, w.State())
	assert.Equal(t, "wrapper-test-success", w.Name())
}

func TestWrapperCanceledContext(t *testing.T) {
	w := NewWrapper(DefaultConfig("wrapper-test-canceled"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := w.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestOnStateChangeCallback(t *testing.T) {
	var transitions []gobreaker.State
	cfg := DefaultConfig("wrapper-test-callback")
	cfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		transitions = append(transitions, to)
	}
	w := NewWrapper(cfg)

	for i := 0; i < 3; i++ {
		_ = w.Execute(context.Background(), func() error { return errors.New("x") })
	}

	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)
}
