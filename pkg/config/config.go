// Package config loads runtime configuration from config.json with
// environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envConfigPath       = "SECTIONBOT_CONFIG"
	envTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	envDataDir          = "SECTIONBOT_DATA_DIR"
)

// Config is the root runtime configuration.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Storage  StorageConfig  `json:"storage"`
	Logging  LoggingConfig  `json:"logging,omitempty"`
}

// TelegramConfig configures the Telegram channel.
type TelegramConfig struct {
	Token string `json:"token"`
}

// StorageConfig controls where the JSON documents live.
type StorageConfig struct {
	Dir string `json:"dir"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
}

// LoadConfig resolves config.json, unmarshals it, and applies environment
// overrides. A missing config file is not an error: the bot can run entirely
// from environment variables and defaults.
func LoadConfig() (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	var cfg Config

	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides injects selected env-driven settings on top of file config.
func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if token := strings.TrimSpace(os.Getenv(envTelegramBotToken)); token != "" {
		cfg.Telegram.Token = token
	}

	if dir := strings.TrimSpace(os.Getenv(envDataDir)); dir != "" {
		cfg.Storage.Dir = dir
	}
}

// findConfigPath resolves the active config file location.
//
// Precedence is SECTIONBOT_CONFIG first, then cwd-local fallback paths.
// An empty path with a nil error means no config file was found.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}
