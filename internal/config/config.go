package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".netask"
	ConfigFileName = "config.json"

	// DefaultInventoryPath is used when neither the config file nor a flag names one
	DefaultInventoryPath = "inventory/devices.yml"
)

// AgentType represents the language model backend used to extract intents
type AgentType string

const (
	AgentDeepSeek AgentType = "deepseek"
	AgentOpenAI   AgentType = "openai"
	AgentClaude   AgentType = "claude-code"
)

// Config represents the application configuration file
type Config struct {
	Agent     AgentType `json:"agent"`
	Model     string    `json:"model,omitempty"`
	BaseURL   string    `json:"base_url,omitempty"`
	Inventory string    `json:"inventory,omitempty"`
	History   bool      `json:"history,omitempty"`
	LogLevel  string    `json:"log_level,omitempty"`
	LogOutput string    `json:"log_output,omitempty"`
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration from disk.
// A missing file is not an error; Load returns nil, nil in that case.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the configuration from an explicit path
func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &Error{Op: "read config", Path: configPath, Err: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Op: "parse config", Path: configPath, Err: err}
	}

	return &cfg, nil
}

// Save writes the configuration to disk
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(configPath, cfg)
}

// SaveFile writes the configuration to an explicit path, creating its directory
func SaveFile(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if a configuration file exists
func Exists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// GetHistoryPath returns the path of the request history database
func GetHistoryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "history.db"), nil
}
