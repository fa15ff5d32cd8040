package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds tally application configuration.
type Config struct {
	Database DatabaseConfig
	Facts    FactsConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings for state snapshots.
type DatabaseConfig struct {
	Path string
}

// FactsConfig holds the number-trivia service settings.
type FactsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AccentColor  string        `mapstructure:"accent_color"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Load reads configuration from file and env. Env var overrides use prefix TALLY_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tally", "tally.db"))
	v.SetDefault("facts.base_url", "http://numbersapi.com")
	v.SetDefault("facts.timeout", "5s")
	v.SetDefault("ui.accent_color", "#f5c2e7")
	v.SetDefault("ui.tick_interval", "1s")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TALLY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tally"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.TickInterval <= 0 {
		return Config{}, fmt.Errorf("ui.tick_interval must be positive, got %s", c.UI.TickInterval)
	}
	if c.Facts.Timeout <= 0 {
		return Config{}, fmt.Errorf("facts.timeout must be positive, got %s", c.Facts.Timeout)
	}
	return c, nil
}
