package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabasePath       string `json:"databasePath"`
	LogFile            string `json:"logFile"`
	LogLevel           string `json:"logLevel"` // "debug" | "info" | "warn" | "error"
	GitHubAPIURL       string `json:"githubApiUrl"`
	PreserveTimestamps bool   `json:"preserveTimestamps"` // default for `bark stars`

	// GitHubToken is only read from the environment, never written to disk.
	GitHubToken string `json:"-"`
}

// DefaultConfig returns the default configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		DatabasePath:       filepath.Join(dir, "bookmarks.db"),
		LogFile:            filepath.Join(dir, "bark.log"),
		LogLevel:           "info",
		GitHubAPIURL:       "https://api.github.com",
		PreserveTimestamps: true,
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	defaults := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := defaults
			// Non-fatal: defaults still apply when the file can't be written
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so fields missing from the file keep them
	config := defaults
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if config.DatabasePath == "" {
		config.DatabasePath = defaults.DatabasePath
	}
	if config.LogFile == "" {
		config.LogFile = defaults.LogFile
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.GitHubAPIURL == "" {
		config.GitHubAPIURL = defaults.GitHubAPIURL
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides config from the environment, loading envFiles (or
// ./.env when none are given) first if they exist.
//
//	BARK_DB         database path
//	BARK_LOG_FILE   log file path
//	BARK_LOG_LEVEL  log level
//	GITHUB_TOKEN    token for the GitHub API
func (c *Config) ApplyEnv(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env file: %w", err)
	}

	if v := os.Getenv("BARK_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("BARK_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("BARK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	c.GitHubToken = os.Getenv("GITHUB_TOKEN")

	return nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/bark/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bark", "config.json"), nil
}
