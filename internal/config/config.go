package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for qrlabel.
type Config struct {
	Settings  SettingsConfig `koanf:"settings"`
	Document  DocumentConfig `koanf:"document"`
	Logging   LoggingConfig  `koanf:"logging"`
	Locations []string       `koanf:"locations"`
}

// SettingsConfig holds layout settings for the label images. They apply to
// the whole batch; there is no per-location override.
type SettingsConfig struct {
	FontSize  int    `koanf:"font_size"`
	Padding   int    `koanf:"padding"`
	BoxSize   int    `koanf:"box_size"`
	OutputDir string `koanf:"output_dir"`
}

// DocumentConfig holds settings for the compiled page document.
type DocumentConfig struct {
	OutputPath string `koanf:"output_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load reads configuration with priority: flags > env > yaml file > defaults.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults.
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Load YAML config file (if given).
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// 3. Load environment variables (QRLABEL_ prefix).
	if err := k.Load(env.Provider("QRLABEL_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "QRLABEL_")),
			"_", ".", -1,
		)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Load CLI flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the layout settings are usable for rendering.
func (c *Config) Validate() error {
	if c.Settings.FontSize <= 0 {
		return fmt.Errorf("settings.font_size must be positive, got %d", c.Settings.FontSize)
	}
	if c.Settings.Padding < 0 {
		return fmt.Errorf("settings.padding must not be negative, got %d", c.Settings.Padding)
	}
	if c.Settings.BoxSize <= 0 {
		return fmt.Errorf("settings.box_size must be positive, got %d", c.Settings.BoxSize)
	}
	if c.Settings.OutputDir == "" {
		return fmt.Errorf("settings.output_dir must not be empty")
	}
	if c.Document.OutputPath == "" {
		return fmt.Errorf("document.output_path must not be empty")
	}
	return nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"settings.font_size":   20,
		"settings.padding":     10,
		"settings.box_size":    5,
		"settings.output_dir":  "output",
		"document.output_path": "labels.pdf",
		"logging.level":        "info",
		"logging.format":       "text",
	}

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}
