package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = NewError("INVALID_ARGUMENT", "invalid argument")
	ErrInvalidSchema   = NewError("INVALID_SCHEMA", "invalid schema identifier")
	ErrInternal        = NewError("INTERNAL_ERROR", "internal error")
	ErrEmitFailed      = NewError("EMIT_FAILED", "failed to emit event")
	ErrUnavailable     = NewError("UNAVAILABLE", "emitter unavailable")
)

type FatalError interface {
	error
	IsFatal() bool
}

type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
	Cause   error
	fatal   *bool
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		if detailMsg, ok := e.Details["message"].(string); ok && detailMsg != "" {
			msg = detailMsg
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so sentinel values can be
// compared with errors.Is after WithDetail/WithCause copies.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

func (e *Error) IsFatal() bool {
	if e.fatal != nil {
		return *e.fatal
	}

	if e.Cause != nil {
		var fatalErr FatalError
		if errors.As(e.Cause, &fatalErr) {
			return fatalErr.IsFatal()
		}
	}

	return e.Code == ErrInvalidArgument.Code || e.Code == ErrInvalidSchema.Code
}

func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.Cause = cause
	return &err
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := *e
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	err.Details = details
	return &err
}

func (e *Error) WithMessage(message string) *Error {
	return e.WithDetail("message", message)
}

func (e *Error) AsFatal() *Error {
	err := *e
	fatal := true
	err.fatal = &fatal
	return &err
}

func Wrap(err error, appErr *Error) *Error {
	if err == nil {
		return nil
	}
	return appErr.WithCause(err)
}

// InvalidArgument reports a rejected required field.
func InvalidArgument(field, message string) *Error {
	return ErrInvalidArgument.
		WithDetail("field", field).
		WithMessage(message)
}

func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrInvalidArgument.Code)
}

func IsInvalidSchema(err error) bool {
	return hasCode(err, ErrInvalidSchema.Code)
}

func IsInternal(err error) bool {
	return hasCode(err, ErrInternal.Code)
}

func hasCode(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal.Code
}
