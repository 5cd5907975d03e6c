package services

import "errors"

var (
	// ErrInvalidRequest means the caller supplied an empty url or selector.
	ErrInvalidRequest = errors.New("missing URL or quality selection")

	// ErrNotFound means no job exists for the given id.
	ErrNotFound = errors.New("download not found")

	// ErrNotReady means the result was requested before a terminal state.
	ErrNotReady = errors.New("download not completed yet")
)

// JobFailedError carries the stored error message of a failed job.
type JobFailedError struct {
	Message string
}

func (e *JobFailedError) Error() string {
	return e.Message
}
