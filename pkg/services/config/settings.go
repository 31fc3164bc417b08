package config

import (
	"fmt"

	"github.com/ajb0730/pc2xl/pkg/export"
	"github.com/spf13/viper"
)

// Settings are the converter defaults that may come from an optional
// settings file and be overridden per invocation.
type Settings struct {
	Prefix    string `mapstructure:"prefix"`
	Separator string `mapstructure:"separator"`
	Verbosity int    `mapstructure:"verbosity"`
}

func DefaultSettings() Settings {
	return Settings{
		Prefix:    export.DefaultPrefix,
		Separator: export.DefaultSeparator,
	}
}

// LoadSettings reads a settings file. An empty path returns the built-in
// defaults.
func LoadSettings(path string) (*Settings, error) {
	cfg := DefaultSettings()
	if path == "" {
		return &cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("prefix", cfg.Prefix)
	v.SetDefault("separator", cfg.Separator)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return &cfg, nil
}
