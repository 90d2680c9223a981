package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Section configuration errors
	ErrMonitorConfig  = errors.New("monitor configuration error")
	ErrBrowserConfig  = errors.New("browser configuration error")
	ErrTelegramConfig = errors.New("telegram configuration error")
	ErrWeChatConfig   = errors.New("WeChat notification configuration error")
	ErrServerConfig   = errors.New("server configuration error")
)
