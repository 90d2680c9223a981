package config

import "os"

// mergeEnvVars overlays environment variables onto a loaded configuration.
// Only variables that are actually set override file values.
func mergeEnvVars(config *Config) {
	if config.Monitor != nil {
		mergeMonitorEnvVars(config.Monitor)
	}
	if config.Browser != nil {
		mergeBrowserEnvVars(config.Browser)
	}
	if config.Telegram != nil {
		mergeTelegramEnvVars(config.Telegram)
	}
	if config.WeChat != nil {
		mergeWeChatEnvVars(config.WeChat)
	}
	if config.Server != nil {
		mergeServerEnvVars(config.Server)
	}
	if config.App != nil {
		mergeAppEnvVars(config.App)
	}
}

func mergeMonitorEnvVars(mc *MonitorConfig) {
	if v := os.Getenv("MONITOR_TICK_SECONDS"); v != "" {
		mc.TickSeconds = parseIntOrDefault(v, mc.TickSeconds)
	}
	if v := os.Getenv("MONITOR_INTERVAL_MINUTES"); v != "" {
		mc.DefaultIntervalMinutes = parseIntOrDefault(v, mc.DefaultIntervalMinutes)
	}
	if v := os.Getenv("MONITOR_SUMMARY_MINUTES"); v != "" {
		mc.DefaultSummaryMinutes = parseIntOrDefault(v, mc.DefaultSummaryMinutes)
	}
	if v := os.Getenv("MONITOR_SEATS"); v != "" {
		mc.DefaultSeats = parseIntOrDefault(v, mc.DefaultSeats)
	}
	if v := os.Getenv("MONITOR_DEPARTURE"); v != "" {
		mc.DefaultDeparture = v
	}
	if v := os.Getenv("MONITOR_ARRIVAL"); v != "" {
		mc.DefaultArrival = v
	}
	if v := os.Getenv("MONITOR_MAX_ADVANCE_DAYS"); v != "" {
		mc.MaxAdvanceDays = parseIntOrDefault(v, mc.MaxAdvanceDays)
	}
	if v := os.Getenv("MONITOR_SCREENSHOT_PATH"); v != "" {
		mc.ScreenshotPath = v
	}
}

func mergeBrowserEnvVars(bc *BrowserConfig) {
	if v := os.Getenv("BROWSER_HEADLESS"); v != "" {
		bc.Headless = v == "true" || v == "1"
	}
	if v := os.Getenv("BROWSER_CHROME_PATH"); v != "" {
		bc.ChromePath = v
	}
	if v := os.Getenv("BROWSER_NAV_TIMEOUT_SECONDS"); v != "" {
		bc.NavigationTimeoutSeconds = parseIntOrDefault(v, bc.NavigationTimeoutSeconds)
	}
	if v := os.Getenv("BROWSER_HYDRATE_DELAY_MS"); v != "" {
		bc.HydrateDelayMs = parseIntOrDefault(v, bc.HydrateDelayMs)
	}
	if v := os.Getenv("BROWSER_OPTION_DELAY_MS"); v != "" {
		bc.OptionDelayMs = parseIntOrDefault(v, bc.OptionDelayMs)
	}
	if v := os.Getenv("BROWSER_SELECTION_DELAY_MS"); v != "" {
		bc.SelectionDelayMs = parseIntOrDefault(v, bc.SelectionDelayMs)
	}
	if v := os.Getenv("BROWSER_RESULTS_DELAY_MS"); v != "" {
		bc.ResultsDelayMs = parseIntOrDefault(v, bc.ResultsDelayMs)
	}
}

func mergeTelegramEnvVars(tc *TelegramConfig) {
	if v := os.Getenv("TELEGRAM_ENABLED"); v != "" {
		tc.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		tc.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		tc.AdminChatID = v
	}
	if v := os.Getenv("TELEGRAM_TIMEOUT_SECONDS"); v != "" {
		tc.TimeoutSeconds = parseIntOrDefault(v, tc.TimeoutSeconds)
	}
	if v := os.Getenv("TELEGRAM_POLL_TIMEOUT_SECONDS"); v != "" {
		tc.PollTimeoutSeconds = parseIntOrDefault(v, tc.PollTimeoutSeconds)
	}
}

func mergeWeChatEnvVars(wc *WeChatConfig) {
	if v := os.Getenv("WECHAT_ENABLED"); v != "" {
		wc.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("WECHAT_WEBHOOK_URL"); v != "" {
		wc.WebhookURL = v
	}
	if v := os.Getenv("WECHAT_MENTION_USERS"); v != "" {
		wc.MentionUsers = parseStringList(v)
	}
	if v := os.Getenv("WECHAT_MAX_RETRIES"); v != "" {
		wc.MaxRetries = parseIntOrDefault(v, wc.MaxRetries)
	}
	if v := os.Getenv("WECHAT_RETRY_DELAY"); v != "" {
		wc.RetryDelay = parseIntOrDefault(v, wc.RetryDelay)
	}
}

func mergeServerEnvVars(sc *ServerConfig) {
	if v := os.Getenv("SERVER_ENABLED"); v != "" {
		sc.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		sc.Port = parseIntOrDefault(v, sc.Port)
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		sc.Address = v
	}
}

func mergeAppEnvVars(ac *AppConfig) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		ac.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		ac.LogFile = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		ac.Environment = v
	}
}
