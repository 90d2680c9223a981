package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"saganowatch/pkg/logger"
)

// HealthCheck performs a health check of core components
func (h *HandlerService) HealthCheck(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	if h.taskMgr != nil {
		checks["task_manager"] = "ok"
	} else {
		checks["task_manager"] = "unavailable"
		healthy = false
	}

	if h.IsSchedulerAvailable() {
		checks["scheduler"] = "ok"
	} else {
		checks["scheduler"] = "unavailable"
	}

	if h.registry != nil {
		checks["watcher"] = "ok"
	} else {
		checks["watcher"] = "unavailable"
		healthy = false
	}

	if h.config != nil {
		checks["config"] = "ok"
	} else {
		checks["config"] = "unavailable"
		healthy = false
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// GetStatus returns runtime statistics for the service
func (h *HandlerService) GetStatus(c *gin.Context) {
	body := gin.H{
		"service":       "saganowatch",
		"timestamp":     time.Now().Format(time.RFC3339),
		"subjects":      h.registry.SubjectCount(),
		"watched_dates": h.registry.ActiveDateCount(),
		"running_tasks": h.taskMgr.GetRunningTaskCount(),
	}

	if h.IsSchedulerAvailable() {
		body["scheduler"] = h.scheduler.GetStatus()
	}

	c.JSON(http.StatusOK, body)
}

// GetLogLevel returns the current log level
func (h *HandlerService) GetLogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"level": logger.GetLogLevel()})
}

// SetLogLevel changes the log level at runtime
func (h *HandlerService) SetLogLevel(c *gin.Context) {
	var req struct {
		Level string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, NewBadRequestError("invalid request body", err))
		return
	}
	if err := logger.SetLogLevel(req.Level); err != nil {
		HandleError(c, NewBadRequestError("unknown log level: "+req.Level, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"level": logger.GetLogLevel()})
}

// GetAppConfig returns a sanitized view of the running configuration
func (h *HandlerService) GetAppConfig(c *gin.Context) {
	cfg := h.config
	c.JSON(http.StatusOK, gin.H{
		"monitor": gin.H{
			"tick_seconds":             cfg.Monitor.TickSeconds,
			"default_interval_minutes": cfg.Monitor.DefaultIntervalMinutes,
			"default_summary_minutes":  cfg.Monitor.DefaultSummaryMinutes,
			"default_seats":            cfg.Monitor.DefaultSeats,
			"default_departure":        cfg.Monitor.DefaultDeparture,
			"default_arrival":          cfg.Monitor.DefaultArrival,
			"max_advance_days":         cfg.Monitor.MaxAdvanceDays,
		},
		"browser": gin.H{
			"headless":                   cfg.Browser.Headless,
			"navigation_timeout_seconds": cfg.Browser.NavigationTimeoutSeconds,
		},
		"telegram": gin.H{
			"enabled": cfg.Telegram.Enabled,
		},
		"wechat": gin.H{
			"enabled": cfg.WeChat.Enabled,
		},
		"app": gin.H{
			"log_level":   cfg.App.LogLevel,
			"environment": cfg.App.Environment,
		},
	})
}
