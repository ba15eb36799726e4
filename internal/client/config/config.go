// FILE: internal/client/config/config.go

// Package config persists client settings under the XDG base directories.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDir      = "chess-client"
	cfgFile     = appDir + "/config.json"
	historyFile = appDir + "/history"

	DefaultAPIBaseURL = "http://localhost:8080"
)

type Config struct {
	APIBaseURL string `json:"api_url"`
	NoColor    bool   `json:"no_color"`
}

var DefaultConfig = Config{
	APIBaseURL: DefaultAPIBaseURL,
}

// Load reads the config file if one exists, falling back to defaults
func Load() *Config {
	cfg := DefaultConfig
	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		_ = readFile(path, &cfg)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return &cfg
}

// LoadFrom reads a config file at an explicit path
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return &cfg, nil
}

// Save writes the config to the user's XDG config directory
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return path, c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// HistoryFile returns the readline history path, creating its directory.
// An empty result disables history.
func HistoryFile() string {
	path, err := xdg.DataFile(historyFile)
	if err != nil {
		return ""
	}
	return path
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
