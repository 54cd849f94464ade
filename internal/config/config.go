package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/sanitize"
)

const (
	// DefaultShortenLength is the hard cap applied by the shorten pass
	DefaultShortenLength = 16
	// DefaultLogLevel is used when log_level is not set
	DefaultLogLevel = "info"
)

// Config represents the mdtree configuration
type Config struct {
	OutputDir             string `yaml:"output_dir"`
	SanitizationMode      string `yaml:"sanitization_mode"`
	AllowEmptyDirectories bool   `yaml:"allow_empty_directories"`
	MaxNameLength         int    `yaml:"max_name_length"`
	ShortenLength         int    `yaml:"shorten_length"`
	LogFile               string `yaml:"log_file"`
	LogLevel              string `yaml:"log_level"`
}

// DefaultConfig returns default configuration. An empty OutputDir means a
// directory named after the outline file in the working directory.
func DefaultConfig() *Config {
	return &Config{
		SanitizationMode: sanitize.Standard.String(),
		MaxNameLength:    sanitize.DefaultMaxLength,
		ShortenLength:    DefaultShortenLength,
		LogFile:          LogFilePath(),
		LogLevel:         DefaultLogLevel,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "mdtree", "config.yaml")
	}
	return filepath.Join(home, ".config", "mdtree", "config.yaml")
}

// LogFilePath returns the default run log location
// Can be overridden for testing
var LogFilePath = func() string {
	return filepath.Join(xdg.StateHome, "mdtree", "mdtree.log")
}

// LockDir returns the directory holding output locks
// Can be overridden for testing
var LockDir = func() string {
	return filepath.Join(xdg.StateHome, "mdtree", "locks")
}

// Load reads configuration from the config file, falling back to defaults
// for the file itself and for every key it leaves out
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Pointers distinguish an explicit false or zero from a missing key
	var raw struct {
		OutputDir             *string `yaml:"output_dir"`
		SanitizationMode      *string `yaml:"sanitization_mode"`
		AllowEmptyDirectories *bool   `yaml:"allow_empty_directories"`
		MaxNameLength         *int    `yaml:"max_name_length"`
		ShortenLength         *int    `yaml:"shorten_length"`
		LogFile               *string `yaml:"log_file"`
		LogLevel              *string `yaml:"log_level"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.OutputDir != nil {
		cfg.OutputDir = *raw.OutputDir
	}
	if raw.SanitizationMode != nil && *raw.SanitizationMode != "" {
		cfg.SanitizationMode = *raw.SanitizationMode
	}
	if raw.AllowEmptyDirectories != nil {
		cfg.AllowEmptyDirectories = *raw.AllowEmptyDirectories
	}
	if raw.MaxNameLength != nil {
		cfg.MaxNameLength = *raw.MaxNameLength
	}
	if raw.ShortenLength != nil {
		cfg.ShortenLength = *raw.ShortenLength
	}
	if raw.LogFile != nil && *raw.LogFile != "" {
		cfg.LogFile = *raw.LogFile
	}
	if raw.LogLevel != nil && *raw.LogLevel != "" {
		cfg.LogLevel = *raw.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := sanitize.ParseMode(c.SanitizationMode); err != nil {
		return fmt.Errorf("invalid sanitization_mode: %w", err)
	}
	if c.MaxNameLength <= 0 {
		return fmt.Errorf("max_name_length must be positive")
	}
	if c.ShortenLength <= 0 {
		return fmt.Errorf("shorten_length must be positive")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	return nil
}

// Mode returns the configured sanitization mode
func (c *Config) Mode() sanitize.Mode {
	m, _ := sanitize.ParseMode(c.SanitizationMode)
	return m
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.OutputDir, err = ExpandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = ExpandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
