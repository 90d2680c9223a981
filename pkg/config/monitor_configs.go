package config

// MonitorConfig holds the watch-loop defaults for new subjects
type MonitorConfig struct {
	TickSeconds            int    `json:"tick_seconds" yaml:"tick_seconds"`                         // scheduler tick period
	DefaultIntervalMinutes int    `json:"default_interval_minutes" yaml:"default_interval_minutes"` // per-subject check cadence
	DefaultSummaryMinutes  int    `json:"default_summary_minutes" yaml:"default_summary_minutes"`   // heartbeat cadence
	DefaultSeats           int    `json:"default_seats" yaml:"default_seats"`
	DefaultDeparture       string `json:"default_departure" yaml:"default_departure"` // station key or name
	DefaultArrival         string `json:"default_arrival" yaml:"default_arrival"`
	MaxAdvanceDays         int    `json:"max_advance_days" yaml:"max_advance_days"` // booking window
	ScreenshotPath         string `json:"screenshot_path" yaml:"screenshot_path"`   // debug artifact, empty disables
}

// BrowserConfig holds headless browser settings
type BrowserConfig struct {
	Headless                 bool   `json:"headless" yaml:"headless"`
	ChromePath               string `json:"chrome_path" yaml:"chrome_path"` // fallback when auto-detect fails
	NavigationTimeoutSeconds int    `json:"navigation_timeout_seconds" yaml:"navigation_timeout_seconds"`

	// Settle delays for UI hydration; the page emits no load-complete signal
	HydrateDelayMs   int `json:"hydrate_delay_ms" yaml:"hydrate_delay_ms"`
	OptionDelayMs    int `json:"option_delay_ms" yaml:"option_delay_ms"`
	SelectionDelayMs int `json:"selection_delay_ms" yaml:"selection_delay_ms"`
	ResultsDelayMs   int `json:"results_delay_ms" yaml:"results_delay_ms"`
}

// NewMonitorConfig creates a monitor configuration with env-backed defaults
func NewMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		TickSeconds:            getEnvInt("MONITOR_TICK_SECONDS", 60),
		DefaultIntervalMinutes: getEnvInt("MONITOR_INTERVAL_MINUTES", 1),
		DefaultSummaryMinutes:  getEnvInt("MONITOR_SUMMARY_MINUTES", 60),
		DefaultSeats:           getEnvInt("MONITOR_SEATS", 1),
		DefaultDeparture:       getEnv("MONITOR_DEPARTURE", "saga"),
		DefaultArrival:         getEnv("MONITOR_ARRIVAL", "kameoka"),
		MaxAdvanceDays:         getEnvInt("MONITOR_MAX_ADVANCE_DAYS", 32),
		ScreenshotPath:         getEnv("MONITOR_SCREENSHOT_PATH", ""),
	}
}

// NewBrowserConfig creates a browser configuration with env-backed defaults
func NewBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		Headless:                 getEnvBool("BROWSER_HEADLESS", true),
		ChromePath:               getEnv("BROWSER_CHROME_PATH", ""),
		NavigationTimeoutSeconds: getEnvInt("BROWSER_NAV_TIMEOUT_SECONDS", 30),
		HydrateDelayMs:           getEnvInt("BROWSER_HYDRATE_DELAY_MS", 2000),
		OptionDelayMs:            getEnvInt("BROWSER_OPTION_DELAY_MS", 500),
		SelectionDelayMs:         getEnvInt("BROWSER_SELECTION_DELAY_MS", 500),
		ResultsDelayMs:           getEnvInt("BROWSER_RESULTS_DELAY_MS", 1500),
	}
}

// Validate validates the monitor configuration, clamping soft fields
func (mc *MonitorConfig) Validate() error {
	if mc.TickSeconds <= 0 {
		mc.TickSeconds = 60
	}

	if mc.DefaultIntervalMinutes < 1 {
		return ErrInvalidValue
	}

	if mc.DefaultSummaryMinutes < 1 {
		return ErrInvalidValue
	}

	if mc.DefaultSeats < 1 {
		return ErrInvalidValue
	}

	if mc.MaxAdvanceDays <= 0 {
		mc.MaxAdvanceDays = 32
	}

	return nil
}

// Validate validates the browser configuration, clamping soft fields
func (bc *BrowserConfig) Validate() error {
	if bc.NavigationTimeoutSeconds <= 0 {
		bc.NavigationTimeoutSeconds = 30
	}

	if bc.HydrateDelayMs < 0 || bc.OptionDelayMs < 0 || bc.SelectionDelayMs < 0 || bc.ResultsDelayMs < 0 {
		return ErrInvalidValue
	}

	if bc.HydrateDelayMs == 0 {
		bc.HydrateDelayMs = 2000
	}
	if bc.OptionDelayMs == 0 {
		bc.OptionDelayMs = 500
	}
	if bc.SelectionDelayMs == 0 {
		bc.SelectionDelayMs = 500
	}
	if bc.ResultsDelayMs == 0 {
		bc.ResultsDelayMs = 1500
	}

	return nil
}
