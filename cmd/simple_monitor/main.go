package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"saganowatch/pkg/config"
	"saganowatch/pkg/logger"
	"saganowatch/pkg/watch"
)

// consoleNotifier prints alerts to stdout. Lets the monitor run without
// any chat credentials configured.
type consoleNotifier struct{}

func (consoleNotifier) Notify(_ context.Context, _ int64, text string) error {
	fmt.Printf("\n%s\n\n", text)
	return nil
}

// simple_monitor watches dates from the MONITOR_DATES environment variable
// and prints availability alerts to the console.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitLogger(true, "", cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rawDates := os.Getenv("MONITOR_DATES")
	if rawDates == "" {
		fmt.Fprintln(os.Stderr, "MONITOR_DATES is required (comma-separated YYYY-MM-DD)")
		os.Exit(1)
	}

	registry := watch.NewRegistry(cfg.Monitor)

	// Single local subject, chat ID 0
	const chatID = int64(0)
	for _, date := range strings.Split(rawDates, ",") {
		date = strings.TrimSpace(date)
		if date == "" {
			continue
		}
		if err := registry.Monitor(chatID, date); err != nil {
			fmt.Fprintf(os.Stderr, "cannot watch %s: %v\n", date, err)
			os.Exit(1)
		}
	}

	checker, err := watch.NewBrowserChecker(cfg.Browser)
	if err != nil {
		logger.Fatal("Failed to start browser", zap.Error(err))
	}
	defer checker.Close()

	engine := watch.NewEngine(registry, checker, consoleNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	state := registry.Get(chatID)
	logger.Info("Monitoring started",
		zap.Strings("dates", state.Dates),
		zap.String("route", state.Departure.Name+" -> "+state.Arrival.Name),
		zap.Int("seats", state.Seats))

	tick := func() {
		engine.RunTick(ctx)
		if cfg.Monitor.ScreenshotPath != "" {
			if err := checker.CaptureScreenshot(cfg.Monitor.ScreenshotPath); err != nil {
				logger.Warn("Debug screenshot failed", zap.Error(err))
			}
		}
	}
	tick()

	ticker := time.NewTicker(time.Duration(cfg.Monitor.TickSeconds) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Monitoring stopped")
			return
		case <-ticker.C:
			tick()
			if registry.ActiveDateCount() == 0 {
				logger.Info("All watched dates have passed, exiting")
				return
			}
		}
	}
}
