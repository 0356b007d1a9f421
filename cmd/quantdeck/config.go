package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quantdeck/quantdeck/internal/model"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	APIBaseURL     string        `mapstructure:"api-base-url"`
	UpdateInterval time.Duration `mapstructure:"update-interval"`
	PageSize       int           `mapstructure:"page-size"`
	Skin           string        `mapstructure:"skin"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("QUANTDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("update-interval", model.DefaultUpdateInterval)
	v.SetDefault("page-size", model.DefaultPageSize)
	v.SetDefault("skin", model.DefaultSkin)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "quantdeck", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
