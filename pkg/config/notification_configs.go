package config

// TelegramConfig holds Telegram bot settings
type TelegramConfig struct {
	Enabled            bool   `json:"enabled" yaml:"enabled"`
	BotToken           string `json:"bot_token" yaml:"bot_token"`
	AdminChatID        string `json:"admin_chat_id" yaml:"admin_chat_id"` // optional fallback recipient
	TimeoutSeconds     int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	PollTimeoutSeconds int    `json:"poll_timeout_seconds" yaml:"poll_timeout_seconds"` // getUpdates long-poll window
}

// WeChatConfig holds WeCom webhook notification settings
type WeChatConfig struct {
	Enabled      bool     `json:"enabled" yaml:"enabled"`
	WebhookURL   string   `json:"webhook_url" yaml:"webhook_url"`
	MentionUsers []string `json:"mention_users" yaml:"mention_users"`
	MaxRetries   int      `json:"max_retries" yaml:"max_retries"`
	RetryDelay   int      `json:"retry_delay" yaml:"retry_delay"` // seconds
}

// NewTelegramConfig creates a Telegram configuration with env-backed defaults
func NewTelegramConfig() *TelegramConfig {
	return &TelegramConfig{
		Enabled:            getEnvBool("TELEGRAM_ENABLED", getEnv("TELEGRAM_BOT_TOKEN", "") != ""),
		BotToken:           getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatID:        getEnv("TELEGRAM_CHAT_ID", ""),
		TimeoutSeconds:     getEnvInt("TELEGRAM_TIMEOUT_SECONDS", 10),
		PollTimeoutSeconds: getEnvInt("TELEGRAM_POLL_TIMEOUT_SECONDS", 50),
	}
}

// NewWeChatConfig creates a WeChat configuration with env-backed defaults
func NewWeChatConfig() *WeChatConfig {
	return &WeChatConfig{
		Enabled:      getEnvBool("WECHAT_ENABLED", false),
		WebhookURL:   getEnv("WECHAT_WEBHOOK_URL", ""),
		MentionUsers: parseStringList(getEnv("WECHAT_MENTION_USERS", "")),
		MaxRetries:   getEnvInt("WECHAT_MAX_RETRIES", 3),
		RetryDelay:   getEnvInt("WECHAT_RETRY_DELAY", 2),
	}
}

// Validate validates the Telegram configuration
func (tc *TelegramConfig) Validate() error {
	if !tc.Enabled {
		return nil // skip validation if not enabled
	}

	if tc.BotToken == "" {
		return ErrMissingRequired
	}

	if tc.TimeoutSeconds <= 0 {
		tc.TimeoutSeconds = 10
	}

	if tc.PollTimeoutSeconds <= 0 {
		tc.PollTimeoutSeconds = 50
	}

	return nil
}

// Validate validates the WeChat configuration
func (wc *WeChatConfig) Validate() error {
	if !wc.Enabled {
		return nil // skip validation if not enabled
	}

	if wc.WebhookURL == "" {
		return ErrMissingRequired
	}

	if wc.MaxRetries < 0 {
		wc.MaxRetries = 3
	}

	if wc.RetryDelay <= 0 {
		wc.RetryDelay = 2
	}

	return nil
}
