package main

import (
	"errors"
	"fmt"
)

var (
	// ErrCollectorUnavailable means the collector binary could not be started.
	ErrCollectorUnavailable = errors.New("collector unavailable")
	// ErrCollectorFailed means the collector ran but exited with a non-zero status.
	ErrCollectorFailed = errors.New("collector failed")
	// ErrDecode means the collector output was not the expected JSON array.
	ErrDecode = errors.New("cannot decode collector output")
	// ErrClipboardUnavailable means the clipboard backend could not be used.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrInvalidTarget means the directory to collect from could not be resolved.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidOption means a configuration value is out of range.
	ErrInvalidOption = errors.New("invalid option")
)

// CollectorFailedError carries the exit status and stderr of a failed collector run.
type CollectorFailedError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CollectorFailedError) Error() string {
	msg := fmt.Sprintf("`%s` failed with exit status %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ":\n" + e.Stderr
	}
	return msg
}

func (e *CollectorFailedError) Is(target error) bool {
	return target == ErrCollectorFailed
}
