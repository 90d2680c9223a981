package handlers

import (
	"context"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/scheduler"
	"saganowatch/pkg/tasks"
	"saganowatch/pkg/watch"
)

// HandlerService provides HTTP handlers for the API
// Base handler service structure containing common dependencies for all handlers
type HandlerService struct {
	config    *config.Config
	ctx       context.Context
	registry  *watch.Registry
	taskMgr   *tasks.TaskManager
	scheduler *scheduler.Scheduler
}

// NewHandlerService creates a new handler service
func NewHandlerService(ctx context.Context, cfg *config.Config, registry *watch.Registry, taskMgr *tasks.TaskManager) *HandlerService {
	logger.Info("Initializing handler service")

	return &HandlerService{
		config:   cfg,
		ctx:      ctx,
		registry: registry,
		taskMgr:  taskMgr,
	}
}

// SetScheduler sets the scheduler reference (called after the scheduler is
// created)
func (h *HandlerService) SetScheduler(s *scheduler.Scheduler) {
	h.scheduler = s
}

// GetConfig returns the handler service configuration
func (h *HandlerService) GetConfig() *config.Config {
	return h.config
}

// IsSchedulerAvailable checks if scheduler is available
func (h *HandlerService) IsSchedulerAvailable() bool {
	return h.scheduler != nil
}
