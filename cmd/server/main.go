package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"saganowatch/pkg/bot"
	"saganowatch/pkg/config"
	"saganowatch/pkg/handlers"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/notifier"
	"saganowatch/pkg/scheduler"
	"saganowatch/pkg/server"
	"saganowatch/pkg/tasks"
	"saganowatch/pkg/watch"
	"saganowatch/pkg/wechat"
)

func main() {
	// .env is optional, real deployments use environment variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	isDev := cfg.App.Environment != "production"
	if err := logger.InitLogger(isDev, cfg.App.LogFile, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting saganowatch",
		zap.String("environment", cfg.App.Environment),
		zap.Int("tick_seconds", cfg.Monitor.TickSeconds))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker, err := watch.NewBrowserChecker(cfg.Browser)
	if err != nil {
		logger.Fatal("Failed to start browser", zap.Error(err))
	}
	defer checker.Close()

	registry := watch.NewRegistry(cfg.Monitor)

	telegram := notifier.NewTelegramNotifier(cfg.Telegram)
	if cfg.Telegram.Enabled {
		pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := telegram.TestConnection(pingCtx); err != nil {
			logger.Fatal("Telegram token check failed", zap.Error(err))
		}
		pingCancel()
	}

	var channel notifier.Notifier = telegram
	var wecom *wechat.Client
	if cfg.WeChat.Enabled {
		wecom = wechat.NewClient(cfg.WeChat)
		channel = notifier.NewMulti(telegram, wechat.NewMirror(wecom))
		logger.Info("WeCom mirroring enabled")
	}

	engine := watch.NewEngine(registry, checker, channel)

	sched := scheduler.New(ctx)
	tickSpec := fmt.Sprintf("@every %ds", cfg.Monitor.TickSeconds)
	if _, err := sched.AddJob("watch_tick", tickSpec, engine.RunTick); err != nil {
		logger.Fatal("Failed to schedule watch tick", zap.Error(err))
	}

	if wecom != nil {
		// Daily operational summary for the team chat
		if _, err := sched.AddJob("wecom_status_report", "0 9 * * *", func(jobCtx context.Context) {
			report := wechat.BuildStatusReport(registry.SubjectCount(), registry.ActiveDateCount(), time.Now())
			if err := wecom.SendMarkdown(jobCtx, report); err != nil {
				logger.Warn("WeCom status report failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("Failed to schedule status report", zap.Error(err))
		}
	}

	if cfg.Telegram.Enabled {
		tgBot := bot.New(telegram, registry, cfg.Monitor)
		go func() {
			if err := tgBot.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Telegram bot stopped", zap.Error(err))
			}
		}()
	} else {
		logger.Warn("Telegram disabled, running without bot commands")
	}

	var httpServer *server.Server
	if cfg.Server.Enabled {
		taskMgr := tasks.NewTaskManager(ctx, checker)
		svc := handlers.NewHandlerService(ctx, cfg, registry, taskMgr)
		svc.SetScheduler(sched)
		httpServer = server.New(cfg, svc)
		go func() {
			if err := httpServer.Run(); err != nil {
				logger.Error("HTTP server stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := sched.Start(); err != nil {
			logger.Error("Scheduler stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}
	if err := sched.Shutdown(shutdownCtx); err != nil {
		logger.Error("Scheduler shutdown error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
