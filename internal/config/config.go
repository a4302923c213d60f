package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds CLI configuration.
type Config struct {
	Log LogConfig `mapstructure:"log"`
	UI  UIConfig  `mapstructure:"ui"`
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	PageSize        int    `mapstructure:"page_size"`
	PromptPrefix    string `mapstructure:"prompt_prefix"`
	InfoPrefix      string `mapstructure:"info_prefix"`
	ErrorPrefix     string `mapstructure:"error_prefix"`
	KeyboardMonitor bool   `mapstructure:"keyboard_monitor"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// FORMBIND_, for example FORMBIND_UI_PAGE_SIZE.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.prompt_prefix", "")
	v.SetDefault("ui.info_prefix", "")
	v.SetDefault("ui.error_prefix", "! ")
	v.SetDefault("ui.keyboard_monitor", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FORMBIND_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(configHome(), "formbind"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMBIND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, an explicit path must exist
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Level maps the configured log level to a slog level. Unknown names fall
// back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}
