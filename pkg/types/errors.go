package types

import (
	"errors"
	"fmt"
)

// ErrUnknownDataType is reported when a clipboard change exposes no
// recognizable content. It is non-fatal: monitoring continues.
var ErrUnknownDataType = errors.New("failed to read the clipboard: unknown data type")

// InitializationError means platform setup failed while constructing the
// driver. It is fatal to construction and is not retried internally.
type InitializationError struct {
	Reason string
	Err    error
}

func (e *InitializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to start clipboard monitor: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to start clipboard monitor: %s", e.Reason)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// MonitorFailedError means the OS change-notification primitive itself broke.
// It is fatal to the observer: broadcast once, then the loop terminates. The
// caller must build a new driver to resume monitoring.
type MonitorFailedError struct {
	Err error
}

func (e *MonitorFailedError) Error() string {
	return fmt.Sprintf("failed to monitor the clipboard: %v", e.Err)
}

func (e *MonitorFailedError) Unwrap() error { return e.Err }

// ReadError means one classification attempt failed. It is reported to
// subscribers and the monitoring loop continues.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read the clipboard: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
