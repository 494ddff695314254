// Package config loads the settings of the lox command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "lox"

type Config struct {
	// Prompt is printed before every REPL line.
	Prompt string `yaml:"prompt" toml:"prompt"`
	// HistoryFile keeps REPL history between sessions. Empty disables history.
	HistoryFile string `yaml:"history_file" toml:"history_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// LogFile, if set, receives JSON log records.
	LogFile string `yaml:"log_file" toml:"log_file"`
	// Color enables colored diagnostics.
	Color bool `yaml:"color" toml:"color"`
	// Extension is the file extension required for scripts.
	Extension string `yaml:"extension" toml:"extension"`
}

func Default() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: filepath.Join(xdg.DataHome, appName, "history"),
		LogLevel:    "warn",
		Color:       true,
		Extension:   ".lox",
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load reads the file at path on top of Default. With an empty path the file at
// DefaultPath is used if it exists. The format is chosen by extension:
// .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}

	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}

	return cfg, nil
}
