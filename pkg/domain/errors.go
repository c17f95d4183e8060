package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTree marks a configuration error in the supplied command tree.
var ErrInvalidTree = errors.New("invalid command tree")

// ErrInvalidPath is returned when a path does not resolve to a leaf.
var ErrInvalidPath = errors.New("path does not resolve to a leaf")

// ErrCancelled is returned when the user dismisses a prompt without choosing.
var ErrCancelled = errors.New("cancelled by user")

// ErrAborted is returned when the user declines, or fails, the escalation gate.
var ErrAborted = errors.New("execution aborted by user")

// ErrSessionWrite is returned when the session record cannot be persisted.
var ErrSessionWrite = errors.New("failed to persist session")

// ExitError carries the non-zero exit status of a stage.
type ExitError struct {
	Stage string
	Code  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Stage, e.Code)
}

// IsEarlyExit reports whether err is a deliberate, user-driven stop that
// should terminate the process successfully.
func IsEarlyExit(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, ErrAborted)
}
