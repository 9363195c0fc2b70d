package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.SampleRate < 8000 || c.Sync.SampleRate > 192000 {
		return fmt.Errorf("sync.sample_rate must be between 8000 and 192000, got %d", c.Sync.SampleRate)
	}
	if c.Sync.ConfidenceThreshold < 0 || c.Sync.ConfidenceThreshold > 1 {
		return errors.New("sync.confidence_threshold must be between 0 and 1")
	}
	if c.Sync.EpsilonSeconds < 0 || c.Sync.EpsilonSeconds > 1 {
		return errors.New("sync.epsilon_seconds must be between 0 and 1")
	}
	if err := validateBitrate(c.Sync.AudioBitrate); err != nil {
		return err
	}
	return nil
}

func validateBitrate(value string) error {
	trimmed := strings.TrimSuffix(strings.ToLower(value), "k")
	if trimmed == "" {
		return errors.New("sync.audio_bitrate must not be empty")
	}
	if _, err := strconv.Atoi(trimmed); err != nil {
		return fmt.Errorf("sync.audio_bitrate %q is not a valid bitrate", value)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
