package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"saganowatch/pkg/logger"
	"saganowatch/pkg/sagano"
	"saganowatch/pkg/utils/dateutils"
	"saganowatch/pkg/watch"
)

const (
	maxRunningTasks = 4
	maxTaskHistory  = 100
)

// TaskManager runs one-off checks asynchronously so HTTP handlers can return
// immediately and poll for the result. Checks serialize on the shared
// browser, so the concurrency cap just bounds the queue.
type TaskManager struct {
	ctx         context.Context
	checker     watch.Checker
	tasks       map[string]*Task
	tasksMutex  sync.RWMutex
	taskHistory []*Task
}

// NewTaskManager creates a task manager over a checker
func NewTaskManager(ctx context.Context, checker watch.Checker) *TaskManager {
	return &TaskManager{
		ctx:     ctx,
		checker: checker,
		tasks:   make(map[string]*Task),
	}
}

// ExecuteTask validates a request, starts it in the background, and returns
// the initial state.
func (tm *TaskManager) ExecuteTask(req *TaskRequest) (*TaskResult, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	if err := tm.validateRequest(req); err != nil {
		return nil, err
	}
	if err := tm.checkTaskLimit(); err != nil {
		return nil, err
	}

	taskCtx, cancel := context.WithCancel(tm.ctx)
	task := &Task{
		ID:        req.ID,
		Type:      req.Type,
		Status:    TaskStatusPending,
		StartTime: time.Now(),
		Config:    req.Config,
		Cancel:    cancel,
	}
	tm.addTask(task)

	go tm.executeTaskInternal(taskCtx, task)

	return &TaskResult{
		ID:        task.ID,
		Type:      string(task.Type),
		Status:    string(task.Status),
		StartedAt: task.StartTime,
		Success:   true,
		Message:   "Task started successfully",
	}, nil
}

// GetTask returns an active or historical task by ID
func (tm *TaskManager) GetTask(taskID string) (*Task, error) {
	tm.tasksMutex.RLock()
	defer tm.tasksMutex.RUnlock()

	if task, exists := tm.tasks[taskID]; exists {
		return task, nil
	}
	for _, task := range tm.taskHistory {
		if task.ID == taskID {
			return task, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// GetTasks returns all active tasks
func (tm *TaskManager) GetTasks() []*Task {
	tm.tasksMutex.RLock()
	defer tm.tasksMutex.RUnlock()

	tasks := make([]*Task, 0, len(tm.tasks))
	for _, task := range tm.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// GetTaskHistory returns finished tasks, oldest first
func (tm *TaskManager) GetTaskHistory() []*Task {
	tm.tasksMutex.RLock()
	defer tm.tasksMutex.RUnlock()

	history := make([]*Task, len(tm.taskHistory))
	copy(history, tm.taskHistory)
	return history
}

// CancelTask cancels a running task
func (tm *TaskManager) CancelTask(taskID string) error {
	tm.tasksMutex.Lock()
	defer tm.tasksMutex.Unlock()

	task, exists := tm.tasks[taskID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.Status != TaskStatusRunning {
		return fmt.Errorf("task %s is not running (status: %s)", taskID, task.Status)
	}

	if task.Cancel != nil {
		task.Cancel()
	}
	task.Status = TaskStatusCancelled
	task.EndTime = time.Now()
	task.Duration = task.EndTime.Sub(task.StartTime)
	task.Error = "Task was cancelled"

	logger.Info("Task cancelled", zap.String("task_id", taskID))
	return nil
}

// GetRunningTaskCount returns how many tasks are running
func (tm *TaskManager) GetRunningTaskCount() int {
	tm.tasksMutex.RLock()
	defer tm.tasksMutex.RUnlock()

	count := 0
	for _, task := range tm.tasks {
		if task.Status == TaskStatusRunning {
			count++
		}
	}
	return count
}

func (tm *TaskManager) validateRequest(req *TaskRequest) error {
	switch req.Type {
	case TaskTypeCheck:
		if req.Config.Date == "" {
			return fmt.Errorf("%w: date is required", ErrInvalidRequest)
		}
		if _, err := dateutils.ParseDate(req.Config.Date); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	case TaskTypeScreenshot:
		if req.Config.ScreenshotPath == "" {
			return fmt.Errorf("%w: screenshot_path is required", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unsupported task type %q", ErrInvalidRequest, req.Type)
	}
	return nil
}

func (tm *TaskManager) checkTaskLimit() error {
	tm.tasksMutex.RLock()
	defer tm.tasksMutex.RUnlock()

	running := 0
	for _, task := range tm.tasks {
		if task.Status == TaskStatusRunning || task.Status == TaskStatusPending {
			running++
		}
	}
	if running >= maxRunningTasks {
		return fmt.Errorf("%w: %d running tasks (max: %d)", ErrTooManyTasks, running, maxRunningTasks)
	}
	return nil
}

func (tm *TaskManager) addTask(task *Task) {
	tm.tasksMutex.Lock()
	defer tm.tasksMutex.Unlock()
	tm.tasks[task.ID] = task
}

func (tm *TaskManager) executeTaskInternal(ctx context.Context, task *Task) {
	ctx = logger.WithTaskID(ctx, task.ID)
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Task execution panicked", zap.Any("panic", r))
			tm.finishTask(task, nil, fmt.Errorf("task panicked: %v", r))
		}
	}()

	tm.updateTaskStatus(task, TaskStatusRunning)
	log.Info("Starting task execution", zap.String("type", string(task.Type)))

	var result *TaskResult
	var err error

	switch task.Type {
	case TaskTypeCheck:
		result, err = tm.executeCheckTask(ctx, task)
	case TaskTypeScreenshot:
		result, err = tm.executeScreenshotTask(task)
	default:
		err = fmt.Errorf("unsupported task type: %s", task.Type)
	}

	tm.finishTask(task, result, err)
}

func (tm *TaskManager) executeCheckTask(ctx context.Context, task *Task) (*TaskResult, error) {
	cfg := task.Config

	dep, err := sagano.FindStation(firstNonEmpty(cfg.Departure, "saga"))
	if err != nil {
		return nil, err
	}
	arr, err := sagano.FindStation(firstNonEmpty(cfg.Arrival, "kameoka"))
	if err != nil {
		return nil, err
	}
	seats := cfg.Seats
	if seats < 1 {
		seats = 1
	}

	check := tm.checker.Check(ctx, cfg.Date, dep, arr, seats)
	result := &TaskResult{
		ID:        task.ID,
		Type:      string(task.Type),
		Status:    string(TaskStatusCompleted),
		Check:     check,
		Success:   check.OK(),
		StartedAt: task.StartTime,
	}
	if check.Err != nil {
		result.Error = check.Err.Error()
		result.Message = "Check failed"
	} else {
		result.Message = fmt.Sprintf("%d slots, %d available",
			len(check.Slots), len(check.AvailableSlots()))
	}
	return result, nil
}

func (tm *TaskManager) executeScreenshotTask(task *Task) (*TaskResult, error) {
	shooter, ok := tm.checker.(interface{ CaptureScreenshot(string) error })
	if !ok {
		return nil, fmt.Errorf("%w: checker cannot capture screenshots", ErrInvalidRequest)
	}
	if err := shooter.CaptureScreenshot(task.Config.ScreenshotPath); err != nil {
		return nil, err
	}
	return &TaskResult{
		ID:        task.ID,
		Type:      string(task.Type),
		Status:    string(TaskStatusCompleted),
		Success:   true,
		Message:   "Screenshot saved to " + task.Config.ScreenshotPath,
		StartedAt: task.StartTime,
	}, nil
}

func (tm *TaskManager) updateTaskStatus(task *Task, status TaskStatus) {
	tm.tasksMutex.Lock()
	defer tm.tasksMutex.Unlock()
	task.Status = status
}

func (tm *TaskManager) finishTask(task *Task, result *TaskResult, err error) {
	tm.tasksMutex.Lock()
	defer tm.tasksMutex.Unlock()

	if task.Status == TaskStatusCancelled {
		// Cancellation already finalized the fields, just retire the task
		tm.retireTask(task)
		return
	}

	task.EndTime = time.Now()
	task.Duration = task.EndTime.Sub(task.StartTime)

	if err != nil {
		task.Status = TaskStatusFailed
		task.Error = err.Error()
		logger.Error("Task execution failed", zap.String("task_id", task.ID), zap.Error(err))
	} else {
		task.Status = TaskStatusCompleted
		if result != nil {
			result.CompletedAt = task.EndTime
		}
		task.Result = result
		logger.Info("Task execution completed",
			zap.String("task_id", task.ID),
			zap.Duration("duration", task.Duration))
	}

	tm.retireTask(task)
}

// retireTask moves a task to the capped history. Caller holds the lock.
func (tm *TaskManager) retireTask(task *Task) {
	delete(tm.tasks, task.ID)
	tm.taskHistory = append(tm.taskHistory, task)
	if len(tm.taskHistory) > maxTaskHistory {
		tm.taskHistory = tm.taskHistory[1:]
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
