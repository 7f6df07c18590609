// Package config loads the TOML configuration for the speechstream CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrConfigNotFound = errors.New("config not found")

type Config struct {
	Service ServiceConfig `toml:"service"`
	Audio   AudioConfig   `toml:"audio"`
	Retry   RetryConfig   `toml:"retry"`
}

// ServiceConfig points the engine at a speech endpoint.
type ServiceConfig struct {
	Endpoint        string   `toml:"endpoint"`
	SubscriptionKey string   `toml:"subscription_key"`
	SourceLanguage  string   `toml:"source_language"`
	TargetLanguages []string `toml:"target_languages"`
	Voice           string   `toml:"voice"`
}

type AudioConfig struct {
	MaxFrameSize    int `toml:"max_frame_size"`
	EventBufferSize int `toml:"event_buffer_size"`
}

type RetryConfig struct {
	MaxRetries       int `toml:"max_retries"`
	InitialBackoffMs int `toml:"initial_backoff_ms"`
	MaxBackoffMs     int `toml:"max_backoff_ms"`
}

func (c *RetryConfig) InitialBackoff() time.Duration {
	return time.Duration(c.InitialBackoffMs) * time.Millisecond
}

func (c *RetryConfig) MaxBackoff() time.Duration {
	return time.Duration(c.MaxBackoffMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Audio.MaxFrameSize == 0 {
		c.Audio.MaxFrameSize = 4096
	}
	if c.Audio.EventBufferSize == 0 {
		c.Audio.EventBufferSize = 64
	}
	if c.Retry.MaxRetries == 0 {
		c.Retry.MaxRetries = 4
	}
	if c.Retry.InitialBackoffMs == 0 {
		c.Retry.InitialBackoffMs = 500
	}
	if c.Retry.MaxBackoffMs == 0 {
		c.Retry.MaxBackoffMs = 8000
	}
	if c.Service.SourceLanguage == "" {
		c.Service.SourceLanguage = "en-US"
	}
}

func (c *Config) Validate() error {
	if c.Service.Endpoint == "" {
		return fmt.Errorf("service.endpoint is required")
	}
	if len(c.Service.TargetLanguages) == 0 {
		return fmt.Errorf("service.target_languages must list at least one language")
	}
	if c.Audio.MaxFrameSize < 0 {
		return fmt.Errorf("audio.max_frame_size must be positive")
	}
	return nil
}
