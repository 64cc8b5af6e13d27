package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTelegram(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	return nil
}

// ValidateBot checks the settings that only the long-running bot needs.
func (c *Config) ValidateBot() error {
	if c.Telegram.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/mediakit/config.toml"
		}
		return fmt.Errorf("telegram.token is required. Set MEDIAKIT_TELEGRAM_TOKEN or edit %s (create with 'mediakit config init')", defaultPath)
	}
	if !strings.Contains(c.Telegram.APIEndpoint, "%s") {
		return errors.New("telegram.api_endpoint must contain %s placeholders for the token and method")
	}
	return nil
}

func (c *Config) validateTelegram() error {
	if c.Telegram.Concurrency <= 0 {
		return errors.New("telegram.concurrency must be positive")
	}
	if c.Telegram.PollTimeout <= 0 {
		return errors.New("telegram.poll_timeout must be positive (seconds)")
	}
	for _, prefix := range c.Telegram.CommandPrefixes {
		if strings.ContainsAny(prefix, " \t\n") {
			return fmt.Errorf("telegram.command_prefixes: %q must not contain whitespace", prefix)
		}
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if c.Translate.TimeoutSeconds <= 0 {
		return errors.New("translate.timeout_seconds must be positive")
	}
	if c.Translate.RetryAttempts < 1 {
		return errors.New("translate.retry_attempts must be >= 1")
	}
	if _, err := language.Parse(c.Translate.DefaultLanguage); err != nil {
		return fmt.Errorf("translate.default_language: %q is not a valid language code", c.Translate.DefaultLanguage)
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.SynthFPS <= 0 {
		return errors.New("media.synth_fps must be positive")
	}
	if _, _, err := ParseSize(c.Media.SynthSize); err != nil {
		return fmt.Errorf("media.synth_size: %w", err)
	}
	if c.Media.MaxFrames < 1 || c.Media.MaxFrames > maxFramesUpperBound {
		return fmt.Errorf("media.max_frames must be between 1 and %d", maxFramesUpperBound)
	}
	if c.Media.AutocropThreshold < 0 || c.Media.AutocropThreshold > maxAutocropThreshold {
		return fmt.Errorf("media.autocrop_threshold must be between 0 and %d", maxAutocropThreshold)
	}
	return nil
}

// ParseSize parses a WxH canvas size such as "640x360". Both dimensions must
// be positive and even so the synthesized track is encodable as yuv420p.
func ParseSize(value string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(value)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", value)
	}
	width, errW := strconv.Atoi(parts[0])
	height, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", value)
	}
	if width%2 != 0 || height%2 != 0 {
		return 0, 0, fmt.Errorf("invalid size %q (dimensions must be even)", value)
	}
	return width, height, nil
}
