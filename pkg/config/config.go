package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tool's settings, loaded from the YAML config file with
// environment overrides on top. Flags override everything at the command
// layer.
type Config struct {
	// Host is the base URL of the Ollama server.
	Host string `yaml:"host"`

	// Model is the vision-capable model used for keyword generation.
	Model string `yaml:"model"`

	// Delimiter joins keywords in derived filenames: '_', '-' or ' '.
	Delimiter string `yaml:"delimiter"`

	// JPEGQuality sets the re-encode quality for converted files (1-100).
	JPEGQuality int `yaml:"jpeg_quality"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Host:            "http://localhost:11434",
		Model:           "llava-phi3",
		Delimiter:       "_",
		JPEGQuality:     90,
		ColorTheme:      "auto",
		WatchDebounceMS: 500,
	}
}

// Path returns the location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "imgrename", "config.yaml"), nil
}

// Load reads the config file from its default location. A missing file is
// not an error; defaults are used. Environment variables win over the file.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		path = ""
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path, falling back to defaults when the
// path is empty or the file does not exist, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		c.Host = host
	}
	if model := os.Getenv("IMGRENAME_MODEL"); model != "" {
		c.Model = model
	}
}

// fillDefaults replaces zero values left by an explicit empty key in the file.
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.Host == "" {
		c.Host = defaults.Host
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = defaults.JPEGQuality
	}
	if c.ColorTheme == "" {
		c.ColorTheme = defaults.ColorTheme
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = defaults.WatchDebounceMS
	}
}
