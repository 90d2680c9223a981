package tasks

import (
	"context"
	"time"

	"saganowatch/pkg/sagano"
)

// TaskType identifies what a task does
type TaskType string

const (
	// TaskTypeCheck runs one out-of-band availability check
	TaskTypeCheck TaskType = "check"
	// TaskTypeScreenshot captures the current browser page
	TaskTypeScreenshot TaskType = "screenshot"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// TaskRequest describes a task to run
type TaskRequest struct {
	ID     string     `json:"id,omitempty"`
	Type   TaskType   `json:"type"`
	Config TaskConfig `json:"config"`
}

// TaskConfig carries per-type parameters
type TaskConfig struct {
	Date           string `json:"date,omitempty"`
	Departure      string `json:"departure,omitempty"`
	Arrival        string `json:"arrival,omitempty"`
	Seats          int    `json:"seats,omitempty"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`
}

// Task is a running or finished task
type Task struct {
	ID        string        `json:"id"`
	Type      TaskType      `json:"type"`
	Status    TaskStatus    `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Config    TaskConfig    `json:"config"`
	Result    *TaskResult   `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`

	Cancel context.CancelFunc `json:"-"`
}

// TaskResult is what a finished task produced
type TaskResult struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Status      string              `json:"status"`
	Check       *sagano.CheckResult `json:"check,omitempty"`
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Error       string              `json:"error,omitempty"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at,omitempty"`
}
