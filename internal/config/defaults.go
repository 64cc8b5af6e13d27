package config

const (
	defaultWorkDir           = "~/.local/share/mediakit/work"
	defaultLogDir            = "~/.local/share/mediakit/logs"
	defaultTelegramEndpoint  = "https://api.telegram.org/bot%s/%s"
	defaultConcurrency       = 4
	defaultPollTimeout       = 60
	defaultAgentName         = "mediakit"
	defaultTranslateBaseURL  = "https://translate.googleapis.com"
	defaultTranslateLanguage = "en"
	defaultTranslateTimeout  = 15
	defaultTranslateRetries  = 1
	defaultSynthFPS          = 24
	defaultSynthSize         = "640x360"
	defaultMaxFrames         = 50
	defaultAutocropThreshold = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	maxAutocropThreshold     = 255
	maxFramesUpperBound      = 50
	defaultEnvPrefix         = "mediakit"
	defaultDotEnvFile        = ".env"
)

var defaultCommandPrefixes = []string{"/", "!", "."}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Telegram: Telegram{
			APIEndpoint:     defaultTelegramEndpoint,
			CommandPrefixes: append([]string(nil), defaultCommandPrefixes...),
			Concurrency:     defaultConcurrency,
			PollTimeout:     defaultPollTimeout,
			AgentName:       defaultAgentName,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Translate: Translate{
			BaseURL:         defaultTranslateBaseURL,
			DefaultLanguage: defaultTranslateLanguage,
			TimeoutSeconds:  defaultTranslateTimeout,
			RetryAttempts:   defaultTranslateRetries,
		},
		Media: Media{
			SynthFPS:          defaultSynthFPS,
			SynthSize:         defaultSynthSize,
			MaxFrames:         defaultMaxFrames,
			AutocropThreshold: defaultAutocropThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
