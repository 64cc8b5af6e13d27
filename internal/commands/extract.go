package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/media/clip"
	"mediakit/internal/services"
)

const extractHelp = `Command: <code>/extract [type] [options]</code> [reply to video]
Desc: Extract audio, subtitles, or frames from a video file.
Supported types:
- <code>audio</code>: extract audio as MP3.
- <code>subtitle</code>: extract the first embedded subtitle track as SRT.
- <code>frame [options]</code>: extract frame(s) as JPG.
  - <code>single [time]</code>: one frame at the given second (e.g., /extract frame single 10).
  - <code>multiple [count]</code>: count evenly spaced frames (e.g., /extract frame multiple 5).
  - no options: one frame at the midpoint.`

const (
	extractUsage      = "Please specify a valid extraction type: audio, subtitle, or frame (e.g., /extract audio)."
	frameOptionUsage  = "Invalid frame option. Use: single [time] or multiple [count]"
	noSubtitleMessage = "No embedded subtitles found in the video."
)

type frameMode int

const (
	frameMidpoint frameMode = iota
	frameSingle
	frameMultiple
)

// Extract pulls audio, subtitles or still frames out of a video.
func Extract(deps Deps) job.Command {
	return job.Command{
		Name:    "extract",
		Usage:   "extract <audio|subtitle|frame [single <seconds>|multiple <count>]>",
		Help:    extractHelp,
		Accepts: []job.Kind{job.KindVideo},
		Reject:  "Please reply to a video file to extract content.",
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) < 1 {
				return nil, argumentError(extractUsage)
			}
			e := &extract{deps: deps, what: strings.ToLower(args[0])}
			switch e.what {
			case "audio", "subtitle":
				return e, nil
			case "frame":
				if err := e.parseFrameOptions(args[1:]); err != nil {
					return nil, err
				}
				return e, nil
			default:
				return nil, argumentError(extractUsage)
			}
		},
	}
}

type extract struct {
	deps  Deps
	what  string
	mode  frameMode
	at    float64
	count int
}

func (e *extract) parseFrameOptions(opts []string) error {
	if len(opts) == 0 {
		e.mode = frameMidpoint
		return nil
	}
	if len(opts) < 2 {
		return argumentError(frameOptionUsage)
	}
	switch strings.ToLower(opts[0]) {
	case "single":
		at, err := strconv.ParseFloat(opts[1], 64)
		if err != nil || math.IsNaN(at) || math.IsInf(at, 0) {
			return argumentError(fmt.Sprintf("Invalid time format or value: %q is not a number of seconds.", opts[1]))
		}
		if at < 0 {
			return argumentError("Invalid time format or value: Specified time is out of video duration.")
		}
		e.mode = frameSingle
		e.at = at
	case "multiple":
		limit := e.deps.maxFrames()
		count, err := strconv.Atoi(opts[1])
		if err != nil || count < 1 || count > limit {
			return argumentError(fmt.Sprintf("Invalid frame count: Frame count must be between 1 and %d.", limit))
		}
		e.mode = frameMultiple
		e.count = count
	default:
		return argumentError(frameOptionUsage)
	}
	return nil
}

func (e *extract) Labels() job.Labels {
	return job.Labels{
		Progress: "Extracting " + e.what + "...",
		Failure:  "Error extracting " + e.what,
	}
}

func (e *extract) Run(ctx context.Context, env job.Env) ([]job.Output, error) {
	switch e.what {
	case "audio":
		return e.audio(ctx, env)
	case "subtitle":
		return e.subtitle(ctx, env)
	default:
		return e.frames(ctx, env)
	}
}

func (e *extract) audio(ctx context.Context, env job.Env) ([]job.Output, error) {
	probe, err := e.deps.probe(ctx, env.Input)
	if err != nil {
		return nil, err
	}
	if !probe.HasAudio() {
		return nil, services.Wrap(services.ErrTransform, "extract", "audio", "The video has no audio track.", nil)
	}
	dest := env.Workspace.Path("extracted.mp3")
	if err := e.deps.FFmpeg.ExtractAudioMP3(ctx, env.Input, dest); err != nil {
		return nil, err
	}
	return []job.Output{{Path: dest, Kind: job.KindAudio, Caption: byLine("Audio Extracted", env.Agent)}}, nil
}

func (e *extract) subtitle(ctx context.Context, env job.Env) ([]job.Output, error) {
	probe, err := e.deps.probe(ctx, env.Input)
	if err != nil {
		return nil, err
	}
	if probe.SubtitleStreamCount() == 0 {
		return nil, services.Wrap(services.ErrTransform, "extract", "subtitle", noSubtitleMessage, nil)
	}
	dest := env.Workspace.Path("extracted.srt")
	if err := e.deps.FFmpeg.ExtractSubtitle(ctx, env.Input, dest); err != nil {
		return nil, err
	}
	return []job.Output{{Path: dest, Kind: job.KindDocument, Caption: byLine("Subtitle Extracted", env.Agent)}}, nil
}

func (e *extract) frames(ctx context.Context, env job.Env) ([]job.Output, error) {
	duration, err := e.deps.duration(ctx, env.Input)
	if err != nil {
		return nil, err
	}

	var offsets []float64
	switch e.mode {
	case frameSingle:
		if err := clip.CheckOffset(e.at, duration); err != nil {
			return nil, err
		}
		offsets = []float64{e.at}
	case frameMultiple:
		offsets, err = clip.FrameTimestamps(duration, e.count)
		if err != nil {
			return nil, err
		}
	default:
		offsets = []float64{clip.Midpoint(duration)}
	}

	outputs := make([]job.Output, 0, len(offsets))
	for i, at := range offsets {
		name := "frame.jpg"
		label := "Frame Extracted"
		if e.mode == frameMultiple {
			name = fmt.Sprintf("frame_%d.jpg", i+1)
			label = fmt.Sprintf("Frame %d Extracted", i+1)
		}
		dest := env.Workspace.Path(name)
		if err := e.deps.FFmpeg.Frame(ctx, env.Input, at, dest); err != nil {
			return outputs, err
		}
		outputs = append(outputs, job.Output{
			Path:    dest,
			Kind:    job.KindPhoto,
			Caption: fmt.Sprintf("%s (at %.2fs)", byLine(label, env.Agent), at),
		})
	}
	e.deps.logger(env, "extract").Debug("frames extracted",
		logging.Int("frame_count", len(outputs)),
		logging.Float64("duration_seconds", duration),
	)
	return outputs, nil
}
