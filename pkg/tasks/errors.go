package tasks

import "errors"

var (
	// ErrTaskNotFound indicates the task ID matches nothing active or in
	// history
	ErrTaskNotFound = errors.New("task not found")

	// ErrTooManyTasks indicates the concurrent task limit was hit
	ErrTooManyTasks = errors.New("too many running tasks")

	// ErrInvalidRequest indicates the task request is missing parameters
	ErrInvalidRequest = errors.New("invalid task request")
)
