package commands

import (
	"context"
	"strings"

	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/services"
)

const convertHelp = `Command: <code>/convert [format]</code> [reply to video/audio]
Desc: Convert a video or audio file to MP4 or MP3.
Supported formats: mp4, mp3
Example: <code>/convert mp4</code> to convert to MP4, <code>/convert mp3</code> to convert to MP3.`

// Convert re-encodes video or audio to MP4 or extracts MP3.
func Convert(deps Deps) job.Command {
	return job.Command{
		Name:    "convert",
		Usage:   "convert <mp4|mp3>",
		Help:    convertHelp,
		Accepts: []job.Kind{job.KindVideo, job.KindAudio},
		Reject:  "Please reply to a video or audio file to convert.",
		Labels:  job.Labels{Failure: "Error converting media"},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) < 1 {
				return nil, argumentError(convertUsage)
			}
			format := strings.ToLower(args[0])
			if format != "mp4" && format != "mp3" {
				return nil, argumentError(convertUsage)
			}
			return &convert{deps: deps, format: format}, nil
		},
	}
}

const convertUsage = "Please specify a valid format: mp4 or mp3 (e.g., /convert mp4)."

type convert struct {
	deps   Deps
	format string
}

func (c *convert) Labels() job.Labels {
	return job.Labels{Progress: "Converting to " + strings.ToUpper(c.format) + "..."}
}

func (c *convert) Run(ctx context.Context, env job.Env) ([]job.Output, error) {
	logger := c.deps.logger(env, "convert")
	probe, err := c.deps.probe(ctx, env.Input)
	if err != nil {
		return nil, err
	}

	if c.format == "mp3" {
		if !probe.HasAudio() {
			return nil, services.Wrap(services.ErrTransform, "convert", "extract audio", "The file has no audio track to convert.", nil)
		}
		dest := env.Workspace.Path("output.mp3")
		if err := c.deps.FFmpeg.ExtractAudioMP3(ctx, env.Input, dest); err != nil {
			return nil, err
		}
		return []job.Output{{Path: dest, Kind: job.KindAudio, Caption: byLine("Converted to MP3", env.Agent)}}, nil
	}

	dest := env.Workspace.Path("output.mp4")
	if _, hasVideo := probe.FirstVideo(); hasVideo {
		if err := c.deps.FFmpeg.TranscodeVideo(ctx, env.Input, dest); err != nil {
			return nil, err
		}
	} else {
		synth := c.deps.Synth
		synth.Duration = probe.DurationSeconds()
		if synth.FPS <= 0 {
			synth.FPS = 24
		}
		logger.Debug("synthesizing video track",
			logging.Float64("duration_seconds", synth.Duration),
			logging.Int("fps", synth.FPS),
		)
		if err := c.deps.FFmpeg.AudioToVideo(ctx, env.Input, dest, synth); err != nil {
			return nil, err
		}
	}
	return []job.Output{{Path: dest, Kind: job.KindVideo, Caption: byLine("Converted to MP4", env.Agent)}}, nil
}
