package config

import "fmt"

// ValidateConfig validates every populated section and wraps failures with
// the section sentinel so callers can classify them.
func (c *Config) ValidateConfig() error {
	if c.Monitor != nil {
		if err := c.Monitor.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrMonitorConfig, err)
		}
	}

	if c.Browser != nil {
		if err := c.Browser.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrBrowserConfig, err)
		}
	}

	if c.Telegram != nil {
		if err := c.Telegram.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrTelegramConfig, err)
		}
	}

	if c.WeChat != nil {
		if err := c.WeChat.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrWeChatConfig, err)
		}
	}

	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrServerConfig, err)
		}
	}

	if c.App != nil {
		if err := c.App.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}

	return nil
}
