package commands

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"mediakit/internal/config"
	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/media/ffmpeg"
	"mediakit/internal/media/ffprobe"
	"mediakit/internal/services"
	"mediakit/internal/services/translate"
	"mediakit/internal/subtitles"
)

// Deps are the collaborators shared by every command.
type Deps struct {
	FFmpeg        *ffmpeg.Tool
	Probe         ffprobe.Prober
	FFprobeBinary string
	Translator    subtitles.Translator
	// DefaultLanguage is the autotrans target when none is given.
	DefaultLanguage   string
	Synth             ffmpeg.Synth
	MaxFrames         int
	AutocropThreshold uint8
	Logger            *slog.Logger
}

// DepsFromConfig wires the production collaborators described by cfg.
func DepsFromConfig(cfg *config.Config, logger *slog.Logger) (Deps, error) {
	if cfg == nil {
		return Deps{}, fmt.Errorf("commands: config is nil")
	}
	width, height, err := config.ParseSize(cfg.Media.SynthSize)
	if err != nil {
		return Deps{}, fmt.Errorf("commands: synth size: %w", err)
	}
	return Deps{
		FFmpeg:        ffmpeg.New(cfg.FFmpegBinary(), logger),
		Probe:         ffprobe.Inspect,
		FFprobeBinary: cfg.FFprobeBinary(),
		Translator: translate.NewClient(translate.Config{
			BaseURL:        cfg.Translate.BaseURL,
			TimeoutSeconds: cfg.Translate.TimeoutSeconds,
			RetryAttempts:  cfg.Translate.RetryAttempts,
		}),
		DefaultLanguage:   cfg.Translate.DefaultLanguage,
		Synth:             ffmpeg.Synth{FPS: cfg.Media.SynthFPS, Width: width, Height: height},
		MaxFrames:         cfg.Media.MaxFrames,
		AutocropThreshold: uint8(cfg.Media.AutocropThreshold),
		Logger:            logger,
	}, nil
}

// All returns every media command built on deps, in help order.
func All(deps Deps) []job.Command {
	return []job.Command{
		Autotrans(deps),
		Convert(deps),
		Metadata(deps),
		Extract(deps),
		Rotasi(deps),
		Videotools(deps),
	}
}

// NewRegistry registers every media command.
func NewRegistry(deps Deps) *job.Registry {
	return job.NewRegistry(All(deps)...)
}

func (d Deps) maxFrames() int {
	if d.MaxFrames <= 0 {
		return 50
	}
	return d.MaxFrames
}

func (d Deps) logger(env job.Env, component string) *slog.Logger {
	base := env.Logger
	if base == nil {
		base = d.Logger
	}
	return logging.NewComponentLogger(base, component)
}

// probe inspects the job input.
func (d Deps) probe(ctx context.Context, path string) (ffprobe.Result, error) {
	if d.Probe == nil {
		return ffprobe.Result{}, services.Wrap(services.ErrConfiguration, "ffprobe", "inspect", "ffprobe is not configured", nil)
	}
	result, err := d.Probe(ctx, d.FFprobeBinary, path)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", "Could not read the media file", err)
	}
	return result, nil
}

// duration probes path and returns its length in seconds.
func (d Deps) duration(ctx context.Context, path string) (float64, error) {
	result, err := d.probe(ctx, path)
	if err != nil {
		return 0, err
	}
	seconds := result.DurationSeconds()
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0, services.Wrap(services.ErrTransform, "ffprobe", "duration", "Could not determine the media duration", nil)
	}
	return seconds, nil
}

// byLine renders the "<b>Label By:</b> agent" caption prefix.
func byLine(label, agent string) string {
	return "<b>" + label + " By:</b> " + html.EscapeString(agent)
}

// formatDegrees prints an angle the way users typically write floats, always
// with a fractional part ("90.0", "-45.5").
func formatDegrees(value float64) string {
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

// isDigits reports whether value is a non-empty run of ASCII digits.
func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func argumentError(message string) error {
	return services.Reject(services.ErrArgumentInvalid, message)
}
