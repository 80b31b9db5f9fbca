package broker

import (
	"context"

	"tracker/pkg/models"
)

// Producer emits processed events downstream.
type Producer interface {
	Publish(ctx context.Context, topic string, ev models.TrackedEvent) error
	Close() error
}
