package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over discovery
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Tank.SurfaceRatio < 0 || c.Tank.FloorRatio > 1 || c.Tank.SurfaceRatio >= c.Tank.FloorRatio {
		return fmt.Errorf("tank band %.2f..%.2f must satisfy 0 <= surface < floor <= 1",
			c.Tank.SurfaceRatio, c.Tank.FloorRatio)
	}
	if c.Tank.TurnChance < 1 {
		return fmt.Errorf("tank turn_chance must be >= 1, got %d", c.Tank.TurnChance)
	}
	if c.Tank.MinSpeed > c.Tank.MaxSpeed {
		return fmt.Errorf("tank min_speed %.1f exceeds max_speed %.1f", c.Tank.MinSpeed, c.Tank.MaxSpeed)
	}
	if c.Bubbles.MinBurst < 0 || c.Bubbles.MinBurst > c.Bubbles.MaxBurst {
		return fmt.Errorf("bubble burst %d..%d is not a valid range", c.Bubbles.MinBurst, c.Bubbles.MaxBurst)
	}
	if c.Cursor.Easing <= 0 || c.Cursor.Easing > 1 {
		return fmt.Errorf("cursor easing must be in (0, 1], got %.2f", c.Cursor.Easing)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Aquarium")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Aquarium")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "aquarium")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aquarium")
	}
}

func defaultDataDir() string {
	return filepath.Join(ConfigDir(), "data")
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
