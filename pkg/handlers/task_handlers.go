package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"saganowatch/internal/models"
	"saganowatch/pkg/tasks"
)

// CreateCheckTask starts an out-of-band availability check and returns the
// task ID for polling.
func (h *HandlerService) CreateCheckTask(c *gin.Context) {
	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, NewBadRequestError("invalid request body", err))
		return
	}

	result, err := h.taskMgr.ExecuteTask(&tasks.TaskRequest{
		Type: tasks.TaskTypeCheck,
		Config: tasks.TaskConfig{
			Date:      req.Date,
			Departure: req.Departure,
			Arrival:   req.Arrival,
			Seats:     req.Seats,
		},
	})
	if err != nil {
		if errors.Is(err, tasks.ErrInvalidRequest) {
			HandleError(c, NewBadRequestError(err.Error(), nil))
			return
		}
		if errors.Is(err, tasks.ErrTooManyTasks) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": true, "message": err.Error()})
			return
		}
		HandleError(c, NewInternalServerError("failed to start task", err))
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// GetTask returns one task by ID
func (h *HandlerService) GetTask(c *gin.Context) {
	task, err := h.taskMgr.GetTask(c.Param("id"))
	if err != nil {
		HandleError(c, NewNotFoundError("task not found", err))
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasks returns active tasks and recent history
func (h *HandlerService) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active":  h.taskMgr.GetTasks(),
		"history": h.taskMgr.GetTaskHistory(),
	})
}

// CancelTask cancels a running task
func (h *HandlerService) CancelTask(c *gin.Context) {
	if err := h.taskMgr.CancelTask(c.Param("id")); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			HandleError(c, NewNotFoundError("task not found", err))
			return
		}
		HandleError(c, NewBadRequestError(err.Error(), nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": c.Param("id")})
}

// ListJobs returns the scheduler's recurring jobs
func (h *HandlerService) ListJobs(c *gin.Context) {
	if !h.IsSchedulerAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": true, "message": "scheduler not available"})
		return
	}
	c.JSON(http.StatusOK, h.scheduler.GetJobs())
}
