// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package config loads server configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Server is the HTTP server configuration.
type Server struct {
	Address string `mapstructure:"address"`
}

// Google configures the Gemini/Veo vendor.
type Google struct {
	// APIKey authenticates plan, storyboard, and video generation.
	APIKey string `mapstructure:"api_key"`
}

// ElevenLabs configures speech synthesis.
type ElevenLabs struct {
	APIKey string `mapstructure:"api_key"`
}

// Pipeline holds generation flow settings.
type Pipeline struct {
	// SkipVideo enables the no-video test mode.
	SkipVideo bool `mapstructure:"skip_video"`
}

// Storage holds local persistence paths.
type Storage struct {
	// DBPath is the SQLite database file.
	DBPath string `mapstructure:"db_path"`

	// MediaRoot is the directory generated media is written under.
	MediaRoot string `mapstructure:"media_root"`
}

// Config is the full server configuration.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Google     Google     `mapstructure:"google"`
	ElevenLabs ElevenLabs `mapstructure:"elevenlabs"`
	Pipeline   Pipeline   `mapstructure:"pipeline"`
	Storage    Storage    `mapstructure:"storage"`
}

// Load reads configuration from config.yaml (if present) and
// CULINARYVISION_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("storage.db_path", "culinaryvision.db")
	v.SetDefault("storage.media_root", "media")
	v.SetDefault("pipeline.skip_video", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CULINARYVISION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("config: unmarshalling config: %w", err)
	}
	return &config, nil
}
