package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir string `toml:"work_dir"`
	LogDir  string `toml:"log_dir"`
}

// Telegram contains the chat transport settings.
type Telegram struct {
	Token           string   `toml:"token"`
	APIEndpoint     string   `toml:"api_endpoint"`
	CommandPrefixes []string `toml:"command_prefixes"`
	Concurrency     int      `toml:"concurrency"`
	PollTimeout     int      `toml:"poll_timeout"`
	AgentName       string   `toml:"agent_name"`
	Debug           bool     `toml:"debug"`
}

// Tools names the external binaries media transforms shell out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Translate contains configuration for the subtitle translation backend.
type Translate struct {
	BaseURL         string `toml:"base_url"`
	DefaultLanguage string `toml:"default_language"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	RetryAttempts   int    `toml:"retry_attempts"`
}

// Media contains tunables shared by the media commands.
type Media struct {
	// SynthFPS is the frame rate of the video track synthesized when an audio
	// file is converted to MP4.
	SynthFPS int `toml:"synth_fps"`
	// SynthSize is the WxH canvas of the synthesized video track.
	SynthSize string `toml:"synth_size"`
	// MaxFrames caps `extract frame multiple N`.
	MaxFrames int `toml:"max_frames"`
	// AutocropThreshold is the 0-255 grayscale intensity above which a pixel
	// counts as content.
	AutocropThreshold int `toml:"autocrop_threshold"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mediakit.
//
// Configuration sections by subsystem:
//   - Paths: job workspace root and log directory
//   - Telegram: bot token, command prefixes, worker concurrency
//   - Tools: ffmpeg/ffprobe binaries
//   - Translate: subtitle translation endpoint and retry policy
//   - Media: synthesis frame rate, frame limits, autocrop threshold
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Telegram  Telegram  `toml:"telegram"`
	Tools     Tools     `toml:"tools"`
	Translate Translate `toml:"translate"`
	Media     Media     `toml:"media"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mediakit/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// variables (optionally seeded from a .env file) override file values. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(filepath.Dir(resolvedPath)); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mediakit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for bot operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for transforms.
func (c *Config) FFmpegBinary() string {
	if v := strings.TrimSpace(c.Tools.FFmpeg); v != "" {
		return v
	}
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if v := strings.TrimSpace(c.Tools.FFprobe); v != "" {
		return v
	}
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML. The bot token is masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	if clone.Telegram.Token != "" {
		clone.Telegram.Token = maskSecret(clone.Telegram.Token)
	}
	clone.Telegram.CommandPrefixes = append([]string(nil), c.Telegram.CommandPrefixes...)
	data, err := toml.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func maskSecret(value string) string {
	if len(value) <= 6 {
		return "***"
	}
	return value[:3] + strings.Repeat("*", len(value)-6) + value[len(value)-3:]
}
