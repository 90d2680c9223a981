package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	// point at a path that does not exist so defaults kick in
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Monitor == nil {
		t.Fatal("expected monitor section to be populated")
	}
	if cfg.Monitor.TickSeconds != 60 {
		t.Errorf("expected default tick of 60s, got %d", cfg.Monitor.TickSeconds)
	}
	if cfg.Monitor.DefaultIntervalMinutes != 1 {
		t.Errorf("expected default interval of 1 minute, got %d", cfg.Monitor.DefaultIntervalMinutes)
	}
	if cfg.Monitor.MaxAdvanceDays != 32 {
		t.Errorf("expected default advance window of 32 days, got %d", cfg.Monitor.MaxAdvanceDays)
	}

	if cfg.Browser == nil {
		t.Fatal("expected browser section to be populated")
	}
	if !cfg.Browser.Headless {
		t.Error("expected headless to default to true")
	}
	if cfg.Browser.HydrateDelayMs != 2000 {
		t.Errorf("expected hydrate delay of 2000ms, got %d", cfg.Browser.HydrateDelayMs)
	}

	if cfg.Server == nil || cfg.Server.Port != 8080 {
		t.Error("expected server section with default port 8080")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := getDefaultConfig()
	cfg.Monitor.DefaultSeats = 3
	cfg.Monitor.DefaultDeparture = "arashiyama"
	cfg.Browser.Headless = false
	cfg.Server.Port = 9090

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Monitor.DefaultSeats != 3 {
		t.Errorf("expected seats 3 after roundtrip, got %d", loaded.Monitor.DefaultSeats)
	}
	if loaded.Monitor.DefaultDeparture != "arashiyama" {
		t.Errorf("expected departure arashiyama, got %s", loaded.Monitor.DefaultDeparture)
	}
	if loaded.Browser.Headless {
		t.Error("expected headless false after roundtrip")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", loaded.Server.Port)
	}
}

func TestSaveConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := getDefaultConfig()
	cfg.Monitor.DefaultSummaryMinutes = 30

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Monitor.DefaultSummaryMinutes != 30 {
		t.Errorf("expected summary cadence 30, got %d", loaded.Monitor.DefaultSummaryMinutes)
	}
}

func TestConfigWithEnvVars(t *testing.T) {
	saved := map[string]string{}
	envVars := map[string]string{
		"TELEGRAM_BOT_TOKEN":       "test-token-123",
		"SERVER_PORT":              "9999",
		"LOG_LEVEL":                "debug",
		"MONITOR_INTERVAL_MINUTES": "5",
	}
	for k, v := range envVars {
		saved[k] = os.Getenv(k)
		os.Setenv(k, v)
	}
	defer func() {
		for k, v := range saved {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Telegram.BotToken != "test-token-123" {
		t.Errorf("expected bot token from env, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999 from env, got %d", cfg.Server.Port)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("expected log level debug from env, got %s", cfg.App.LogLevel)
	}
	if cfg.Monitor.DefaultIntervalMinutes != 5 {
		t.Errorf("expected interval 5 from env, got %d", cfg.Monitor.DefaultIntervalMinutes)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.Server.Port = -1
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("expected validation error for negative port")
	}

	cfg = getDefaultConfig()
	cfg.Monitor.DefaultSeats = 0
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("expected validation error for zero seats")
	}

	cfg = getDefaultConfig()
	cfg.Telegram.Enabled = true
	cfg.Telegram.BotToken = ""
	if err := cfg.ValidateConfig(); err == nil {
		t.Error("expected validation error for enabled telegram without token")
	}
}
