package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is read from $GOEMACS_CONFIG or $XDG_CONFIG_HOME/goemacs/config.yaml.
type Config struct {
	Theme       string            `yaml:"theme"`
	Language    string            `yaml:"language"`
	LineNumbers *bool             `yaml:"line_numbers"`
	ReadOnly    bool              `yaml:"read_only"`
	History     uint32            `yaml:"history"`
	Bindings    map[string]string `yaml:"bindings"` // Key sequence to command, e.g. "C-t": "C-k"
}

func defaultConfig() Config {
	return Config{
		Theme:   "catppuccin-mocha",
		History: 1000,
	}
}

// ShowLineNumbers defaults to true when the key is absent.
func (c Config) ShowLineNumbers() bool {
	return c.LineNumbers == nil || *c.LineNumbers
}

func configPath() (string, error) {
	if path := os.Getenv("GOEMACS_CONFIG"); path != "" {
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "goemacs", "config.yaml"), nil
}

// loadConfig reads the config file at path. A missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
