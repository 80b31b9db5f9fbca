package errors

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic turns a recovered value into a fatal ErrInternal carrying the
// stack of the panicking goroutine. It returns nil when r is nil, so it can be
// called unconditionally with the result of recover().
func RecoverPanic(r interface{}) error {
	if r == nil {
		return nil
	}

	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("panic: %v", r)
	}

	return ErrInternal.
		WithCause(cause).
		WithDetail("panic", true).
		WithDetail("stack_trace", string(debug.Stack())).
		AsFatal()
}

// RecoverPanicWithCallback is RecoverPanic with a hook for reporting, called
// only when there was a panic.
func RecoverPanicWithCallback(r interface{}, report func(error)) error {
	err := RecoverPanic(r)
	if err != nil && report != nil {
		report(err)
	}
	return err
}
