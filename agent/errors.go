package agent

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is wrapped by Files implementations when a path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnknownAction marks a plan step the executor has no handler for.
// It is logged and never stored on the context.
var ErrUnknownAction = errors.New("unknown plan action")

// StepError is the failure of a single plan step. Its message is the text
// stored in ExecContext.Error.
type StepError struct {
	Action Action
	Err    error
}

func (e StepError) Error() string {
	return fmt.Sprintf("Error in %s: %v", e.Action, e.Err)
}

func (e StepError) Unwrap() error {
	return e.Err
}

// ModelError is raised when the model collaborator reports a failure.
type ModelError struct {
	Message string
}

func (e ModelError) Error() string {
	return "Model error: " + e.Message
}
