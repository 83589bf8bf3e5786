package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/username/calview/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Locale LocaleConfig `mapstructure:"locale"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// LocaleConfig represents locale configuration
type LocaleConfig struct {
	Tag            string   `mapstructure:"tag"`               // BCP 47 tag, e.g. "en-US"
	FirstDayOfWeek string   `mapstructure:"first_day_of_week"` // optional override, e.g. "Monday"
	DayNames       []string `mapstructure:"day_names"`         // optional 7 abbreviations, Sunday first
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Color string `mapstructure:"color"` // "auto", "always" or "never"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // when set, JSON logs go to this file with rotation
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: the tool must work with zero setup, so built-in defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calview")
		v.AddConfigPath("/etc/calview")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("locale.tag", "en-US")
	v.SetDefault("output.color", "auto")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Locale.Tag == "" {
		return fmt.Errorf("locale.tag is required")
	}

	if c.Locale.FirstDayOfWeek != "" {
		if _, err := dateutil.ParseWeekday(c.Locale.FirstDayOfWeek); err != nil {
			return fmt.Errorf("locale.first_day_of_week: %w", err)
		}
	}

	if n := len(c.Locale.DayNames); n != 0 && n != 7 {
		return fmt.Errorf("locale.day_names must have exactly 7 entries, got %d", n)
	}
	for i, name := range c.Locale.DayNames {
		if name == "" {
			return fmt.Errorf("locale.day_names[%d] is empty", i)
		}
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be 'auto', 'always' or 'never', got '%s'", c.Output.Color)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be 'debug', 'info', 'warn' or 'error', got '%s'", c.Log.Level)
	}

	return nil
}
