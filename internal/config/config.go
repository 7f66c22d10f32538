// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-planner settings from the user config file,
// environment, and defaults, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the resolved planner settings.
type Config struct {
	Vault                 string  `mapstructure:"vault"`
	ReadingSpeedPagesHour float64 `mapstructure:"reading_speed_pages_hour"`
	TargetPagesPerSession int     `mapstructure:"target_pages_per_session"`
	LogLevel              string  `mapstructure:"log_level"`
}

// Load reads config.yaml from ~/.config/arc-planner (or the directory in
// ARC_PLANNER_CONFIG_DIR), applying ARC_PLANNER_* environment overrides.
// A missing config file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir := os.Getenv("ARC_PLANNER_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "arc-planner"))
	}

	v.SetEnvPrefix("ARC_PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("vault", defaultVaultPath())
	v.SetDefault("reading_speed_pages_hour", 10.0)
	v.SetDefault("target_pages_per_session", 20)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vault"
	}
	return filepath.Join(home, "Documents", "PlannerVault")
}

// Preferences returns the config-level allocation preferences as the open
// map the engine consumes; stored preferences override these at call sites.
func (c *Config) Preferences() map[string]any {
	return map[string]any{
		"reading_speed_pages_hour": c.ReadingSpeedPagesHour,
		"target_pages_per_session": c.TargetPagesPerSession,
	}
}
