package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a file, falling back to defaults when
// the file is absent. Environment variables override file values.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	config := getDefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			// missing file is fine, run on defaults and env
		} else {
			if err := unmarshalConfig(configPath, data, config); err != nil {
				return nil, err
			}
		}
	}

	mergeEnvVars(config)

	if err := config.ValidateConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the configuration back to disk in the format implied by
// the file extension.
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported extension %s", ErrInvalidFormat, filepath.Ext(configPath))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

func unmarshalConfig(configPath string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return fmt.Errorf("%w: unsupported extension %s", ErrInvalidFormat, filepath.Ext(configPath))
	}
	return nil
}

// getDefaultConfigPath searches the usual locations for a config file and
// returns the first one that exists, or empty when none do.
func getDefaultConfigPath() string {
	candidates := []string{
		"config.yaml",
		"config.yml",
		"config.json",
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".saganowatch", "config.yaml"),
			filepath.Join(home, ".saganowatch", "config.json"),
		)
	}

	candidates = append(candidates,
		"/etc/saganowatch/config.yaml",
		"/etc/saganowatch/config.json",
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
