package config

// ServerConfig represents HTTP status API settings
type ServerConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Address string `json:"address" yaml:"address"`
}

// AppConfig represents application-wide settings
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Environment string `json:"environment" yaml:"environment"`
}

// NewServerConfig creates a server configuration with env-backed defaults
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Enabled: getEnvBool("SERVER_ENABLED", true),
		Port:    getEnvInt("SERVER_PORT", 8080),
		Address: getEnv("SERVER_ADDRESS", "0.0.0.0"),
	}
}

// NewAppConfig creates an application configuration with env-backed defaults
func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		Environment: getEnv("APP_ENV", "production"),
	}
}

// Validate validates server configuration
func (sc *ServerConfig) Validate() error {
	if sc.Port <= 0 || sc.Port > 65535 {
		return ErrInvalidValue
	}

	if sc.Address == "" {
		sc.Address = "0.0.0.0"
	}

	return nil
}

// Validate validates application configuration
func (ac *AppConfig) Validate() error {
	if ac.LogLevel != "" {
		validLevels := []string{"debug", "info", "warn", "error", "fatal"}
		if !isValidValue(ac.LogLevel, validLevels) {
			return ErrInvalidValue
		}
	}

	return nil
}
