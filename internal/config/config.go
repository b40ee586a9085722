// Package config loads the application configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// LogConfig controls the log file. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// NotificationsConfig holds notification defaults.
type NotificationsConfig struct {
	// TimeoutMS is how long an undoable notification stays up before its
	// action commits.
	TimeoutMS int `mapstructure:"timeout_ms" yaml:"timeout_ms" validate:"gte=0,lte=30000"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme         string `mapstructure:"theme" yaml:"theme"`
	ShowCompleted bool   `mapstructure:"show_completed" yaml:"show_completed"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database      DatabaseConfig      `mapstructure:"database" yaml:"database"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	Display       DisplayConfig       `mapstructure:"display" yaml:"display"`
}

// NotificationTimeout returns the configured timeout as a duration.
func (c *AppConfig) NotificationTimeout() time.Duration {
	return time.Duration(c.Notifications.TimeoutMS) * time.Millisecond
}

// Validate checks value ranges: the timeout must lie within 0..30000 ms and
// the log level must be one zerolog knows.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns ~/.config/todo, or the working directory if the home
// directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todo")
}

// DefaultPath returns the default path for the configuration file,
// located at ~/.config/todo/config.yaml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(Dir(), "todo.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
		Notifications: NotificationsConfig{
			TimeoutMS: 7500,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("notifications.timeout_ms", d.Notifications.TimeoutMS)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.show_completed", d.Display.ShowCompleted)
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func Save(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("notifications", cfg.Notifications)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
