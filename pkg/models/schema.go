package models

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateTrackedEvent(ev *TrackedEvent) error {
	if ev == nil {
		return &ValidationError{
			Field:   "event",
			Message: "tracked event cannot be nil",
		}
	}

	if ev.EventID == "" {
		return &ValidationError{
			Field:   "event_id",
			Message: "event ID is required",
		}
	}

	if ev.Namespace == "" {
		return &ValidationError{
			Field:   "namespace",
			Message: "tracker namespace is required",
		}
	}

	if ev.Timestamp.IsZero() {
		return &ValidationError{
			Field:   "timestamp",
			Message: "event timestamp is required",
		}
	}

	if ev.Schema == "" {
		return &ValidationError{
			Field:   "schema",
			Message: "event schema is required",
		}
	}

	if ev.Data == nil {
		return &ValidationError{
			Field:   "data",
			Message: "event data cannot be nil",
		}
	}

	for i, c := range ev.Contexts {
		if c.IsZero() {
			return &ValidationError{
				Field:   fmt.Sprintf("contexts[%d]", i),
				Message: "context schema is required",
			}
		}
	}

	return nil
}
