package logging

import (
	"fmt"
	"io"
)

// EarlyLog writes plain lines before the structured logger is configured.
type EarlyLog struct {
	out io.Writer
}

func NewEarlyLogTo(out io.Writer) *EarlyLog {
	return &EarlyLog{out: out}
}

func (l *EarlyLog) Error(msg string, args ...interface{}) {
	fmt.Fprintf(l.out, "ERROR: "+msg+"\n", args...)
}

func (l *EarlyLog) Warn(msg string, args ...interface{}) {
	fmt.Fprintf(l.out, "WARN: "+msg+"\n", args...)
}

func (l *EarlyLog) Info(msg string, args ...interface{}) {
	fmt.Fprintf(l.out, "INFO: "+msg+"\n", args...)
}
