package config

import (
	"os"
	"strings"
)

// Config is the top-level configuration for the watch service
type Config struct {
	Monitor  *MonitorConfig  `json:"monitor" yaml:"monitor"`
	Browser  *BrowserConfig  `json:"browser" yaml:"browser"`
	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`
	WeChat   *WeChatConfig   `json:"wechat" yaml:"wechat"`
	Server   *ServerConfig   `json:"server" yaml:"server"`
	App      *AppConfig      `json:"app" yaml:"app"`
}

// getDefaultConfig builds a configuration with every section at its defaults
func getDefaultConfig() *Config {
	return &Config{
		Monitor:  NewMonitorConfig(),
		Browser:  NewBrowserConfig(),
		Telegram: NewTelegramConfig(),
		WeChat:   NewWeChatConfig(),
		Server:   NewServerConfig(),
		App:      NewAppConfig(),
	}
}

// GetMonitorConfig returns the monitor section, falling back to defaults
func (c *Config) GetMonitorConfig() *MonitorConfig {
	if c.Monitor != nil {
		return c.Monitor
	}
	return NewMonitorConfig()
}

// GetBrowserConfig returns the browser section, falling back to defaults
func (c *Config) GetBrowserConfig() *BrowserConfig {
	if c.Browser != nil {
		return c.Browser
	}
	return NewBrowserConfig()
}

// GetTelegramConfig returns the telegram section, falling back to defaults
func (c *Config) GetTelegramConfig() *TelegramConfig {
	if c.Telegram != nil {
		return c.Telegram
	}
	return NewTelegramConfig()
}

// GetWeChatConfig returns the WeChat section, falling back to defaults
func (c *Config) GetWeChatConfig() *WeChatConfig {
	if c.WeChat != nil {
		return c.WeChat
	}
	return NewWeChatConfig()
}

// Shared env helpers

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue := parseIntOrDefault(value, defaultValue); intValue != defaultValue {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func parseIntOrDefault(s string, defaultValue int) int {
	if len(s) == 0 {
		return defaultValue
	}

	result := 0
	for _, char := range s {
		if char < '0' || char > '9' {
			return defaultValue
		}
		result = result*10 + int(char-'0')
	}
	return result
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func isValidValue(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
