package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saganowatch/pkg/config"
	"saganowatch/pkg/handlers"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/middleware"
)

// Server wraps the HTTP API server
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	cfg        *config.ServerConfig
}

// New builds the gin engine, registers middleware and routes, and returns
// a server ready to run.
func New(cfg *config.Config, svc *handlers.HandlerService) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.GinZapLogger())
	engine.Use(middleware.ErrorHandler())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerRoutes(engine, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	return &Server{
		engine: engine,
		cfg:    cfg.Server,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  90 * time.Second,
		},
	}
}

func registerRoutes(engine *gin.Engine, svc *handlers.HandlerService) {
	engine.GET("/health", svc.HealthCheck)
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := engine.Group("/api/v1")
	{
		api.GET("/status", svc.GetStatus)
		api.GET("/config", svc.GetAppConfig)
		api.GET("/log-level", svc.GetLogLevel)
		api.PUT("/log-level", svc.SetLogLevel)

		api.GET("/stations", svc.ListStations)

		api.GET("/watches", svc.ListWatches)
		api.GET("/watch", svc.GetWatch)
		api.POST("/watches", svc.CreateWatch)
		api.DELETE("/watches", svc.DeleteWatch)
		api.DELETE("/watches/:date", svc.DeleteWatch)

		api.POST("/checks", svc.CreateCheckTask)
		api.GET("/tasks", svc.ListTasks)
		api.GET("/tasks/:id", svc.GetTask)
		api.DELETE("/tasks/:id", svc.CancelTask)

		api.GET("/jobs", svc.ListJobs)
	}
}

// Run starts the HTTP server and blocks until it exits
func (s *Server) Run() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
