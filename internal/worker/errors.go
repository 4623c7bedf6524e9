package worker

import (
	"errors"
	"fmt"
)

var (
	ErrQueueFull   = errors.New("fetch queue is full")
	ErrPoolStopped = errors.New("worker pool is not running")
)

// JobError represents an error that occurred while serving a fetch job
type JobError struct {
	Stage   string // queue, fetch or internal
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

func NewJobError(stage, message string, err error) error {
	return &JobError{
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}
