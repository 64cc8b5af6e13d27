package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envOverrides lists the settings that may be supplied through the
// environment. Keys are read as MEDIAKIT_<TAG>, falling back to the bare tag
// (TELEGRAM_TOKEN, WORK_DIR, ...).
type envOverrides struct {
	TelegramToken    string   `envconfig:"TELEGRAM_TOKEN"`
	CommandPrefixes  []string `envconfig:"COMMAND_PREFIXES"`
	Concurrency      int      `envconfig:"CONCURRENCY"`
	AgentName        string   `envconfig:"AGENT_NAME"`
	WorkDir          string   `envconfig:"WORK_DIR"`
	LogDir           string   `envconfig:"LOG_DIR"`
	LogLevel         string   `envconfig:"LOG_LEVEL"`
	LogFormat        string   `envconfig:"LOG_FORMAT"`
	FFmpeg           string   `envconfig:"FFMPEG"`
	FFprobe          string   `envconfig:"FFPROBE"`
	TranslateBaseURL string   `envconfig:"TRANSLATE_BASE_URL"`
}

// applyEnv seeds the process environment from .env files (the working
// directory first, then the config directory) and overlays any set variables
// on top of the file configuration. Variables already present in the
// environment are never replaced by .env values.
func (c *Config) applyEnv(configDir string) error {
	candidates := []string{defaultDotEnvFile}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, defaultDotEnvFile))
	}
	for _, candidate := range candidates {
		if err := loadDotEnv(candidate); err != nil {
			return err
		}
	}

	var env envOverrides
	if err := envconfig.Process(defaultEnvPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	setString(&c.Telegram.Token, env.TelegramToken)
	setString(&c.Telegram.AgentName, env.AgentName)
	setString(&c.Paths.WorkDir, env.WorkDir)
	setString(&c.Paths.LogDir, env.LogDir)
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.Format, env.LogFormat)
	setString(&c.Tools.FFmpeg, env.FFmpeg)
	setString(&c.Tools.FFprobe, env.FFprobe)
	setString(&c.Translate.BaseURL, env.TranslateBaseURL)
	if len(env.CommandPrefixes) > 0 {
		c.Telegram.CommandPrefixes = env.CommandPrefixes
	}
	if env.Concurrency > 0 {
		c.Telegram.Concurrency = env.Concurrency
	}
	return nil
}

func loadDotEnv(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
