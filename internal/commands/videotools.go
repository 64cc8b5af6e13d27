package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/media/clip"
	"mediakit/internal/services"
)

const videotoolsHelp = `Command: <code>/videotools [subcommand] [args]</code> [reply to video]
Desc: Cut, split, crop or autocrop a video.
Subcommands:
- <code>cut [start] [end]</code>: keep start to end (in seconds, e.g., /videotools cut 10 20).
- <code>split [duration]</code>: split into parts of the given length (in seconds, e.g., /videotools split 30).
- <code>crop [x1] [y1] [x2] [y2]</code>: crop to a rectangle (e.g., /videotools crop 100 100 500 400).
- <code>autocrop</code>: crop away black borders.`

const (
	videotoolsMissing    = "Please specify a subcommand: cut, split, crop, or autocrop."
	videotoolsInvalid    = "Invalid subcommand. Use: cut, split, crop, or autocrop."
	cutUsage             = "Usage: /videotools cut [start] [end] (in seconds)"
	splitUsage           = "Usage: /videotools split [duration] (in seconds)"
	cropUsage            = "Usage: /videotools crop [x1] [y1] [x2] [y2]"
	autocropNoContent    = "Could not detect non-black content for auto-crop."
	autocropInvalidFrame = "Could not detect valid crop boundaries."
)

// Videotools groups the clip editing subcommands.
func Videotools(deps Deps) job.Command {
	return job.Command{
		Name:    "videotools",
		Usage:   "videotools <cut <start> <end>|split <duration>|crop <x1> <y1> <x2> <y2>|autocrop>",
		Help:    videotoolsHelp,
		Accepts: []job.Kind{job.KindVideo},
		Reject:  "Please reply to a video file to process.",
		Labels: job.Labels{
			Progress: "Processing video...",
			Failure:  "Error processing video",
		},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) < 1 {
				return nil, argumentError(videotoolsMissing)
			}
			v := &videotools{deps: deps, sub: strings.ToLower(args[0])}
			rest := args[1:]
			switch v.sub {
			case "cut":
				values, ok := parseDigits(rest, 2)
				if !ok {
					return nil, argumentError(cutUsage)
				}
				v.start, v.end = values[0], values[1]
				if v.start >= v.end {
					return nil, argumentError("Invalid start or end time.")
				}
			case "split":
				values, ok := parseDigits(rest, 1)
				if !ok {
					return nil, argumentError(splitUsage)
				}
				v.chunk = values[0]
				if v.chunk <= 0 {
					return nil, argumentError("Invalid split duration.")
				}
			case "crop":
				values, ok := parseDigits(rest, 4)
				if !ok {
					return nil, argumentError(cropUsage)
				}
				v.rect = clip.Rect{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]}
				if v.rect.X1 >= v.rect.X2 || v.rect.Y1 >= v.rect.Y2 {
					return nil, argumentError("Invalid crop coordinates.")
				}
			case "autocrop":
			default:
				return nil, argumentError(videotoolsInvalid)
			}
			return v, nil
		},
	}
}

// parseDigits requires exactly n non-negative integer arguments.
func parseDigits(args []string, n int) ([]int, bool) {
	if len(args) != n {
		return nil, false
	}
	values := make([]int, n)
	for i, arg := range args {
		if !isDigits(arg) {
			return nil, false
		}
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, false
		}
		values[i] = value
	}
	return values, true
}

type videotools struct {
	deps  Deps
	sub   string
	start int
	end   int
	chunk int
	rect  clip.Rect
}

func (v *videotools) Run(ctx context.Context, env job.Env) ([]job.Output, error) {
	switch v.sub {
	case "cut":
		return v.cut(ctx, env)
	case "split":
		return v.split(ctx, env)
	case "crop":
		return v.crop(ctx, env, v.rect)
	default:
		return v.autocrop(ctx, env)
	}
}

func (v *videotools) output(env job.Env, path string) job.Output {
	return job.Output{
		Path:    path,
		Kind:    job.KindVideo,
		Caption: fmt.Sprintf("%s (%s)", byLine("Processed", env.Agent), v.sub),
	}
}

func (v *videotools) cut(ctx context.Context, env job.Env) ([]job.Output, error) {
	duration, err := v.deps.duration(ctx, env.Input)
	if err != nil {
		return nil, err
	}
	if err := clip.CheckCut(v.start, v.end, duration); err != nil {
		return nil, err
	}
	dest := env.Workspace.Path("cut.mp4")
	if err := v.deps.FFmpeg.Cut(ctx, env.Input, dest, float64(v.start), float64(v.end)); err != nil {
		return nil, err
	}
	return []job.Output{v.output(env, dest)}, nil
}

func (v *videotools) split(ctx context.Context, env job.Env) ([]job.Output, error) {
	duration, err := v.deps.duration(ctx, env.Input)
	if err != nil {
		return nil, err
	}
	segments, err := clip.SplitSegments(duration, v.chunk)
	if err != nil {
		return nil, err
	}
	v.deps.logger(env, "videotools").Info("splitting video",
		logging.Int("part_count", len(segments)),
		logging.Int("chunk_seconds", v.chunk),
		logging.Float64("duration_seconds", duration),
	)
	outputs := make([]job.Output, 0, len(segments))
	for _, segment := range segments {
		dest := env.Workspace.Path(fmt.Sprintf("split_part%d.mp4", segment.Index))
		if err := v.deps.FFmpeg.Cut(ctx, env.Input, dest, segment.Start, segment.End); err != nil {
			return outputs, err
		}
		outputs = append(outputs, v.output(env, dest))
	}
	return outputs, nil
}

func (v *videotools) crop(ctx context.Context, env job.Env, rect clip.Rect) ([]job.Output, error) {
	probe, err := v.deps.probe(ctx, env.Input)
	if err != nil {
		return nil, err
	}
	width, height, ok := probe.Dimensions()
	if !ok {
		return nil, services.Wrap(services.ErrTransform, "videotools", "crop", "Could not determine the video dimensions", nil)
	}
	if err := rect.Within(width, height); err != nil {
		return nil, err
	}
	name := "crop.mp4"
	if v.sub == "autocrop" {
		name = "autocrop.mp4"
	}
	dest := env.Workspace.Path(name)
	if err := v.deps.FFmpeg.Crop(ctx, env.Input, dest, rect.X1, rect.Y1, rect.Width(), rect.Height()); err != nil {
		return nil, err
	}
	return []job.Output{v.output(env, dest)}, nil
}

func (v *videotools) autocrop(ctx context.Context, env job.Env) ([]job.Output, error) {
	sample := env.Workspace.Path("autocrop_sample.bmp")
	if err := v.deps.FFmpeg.GrayFrame(ctx, env.Input, 0, sample); err != nil {
		return nil, err
	}
	img, err := clip.LoadBMP(sample)
	if err != nil {
		return nil, services.Wrap(services.ErrTransform, "videotools", "autocrop", "Could not read the sampled frame", err)
	}
	rect, found := clip.ContentBounds(img, v.deps.AutocropThreshold)
	if !found {
		return nil, services.Wrap(services.ErrTransform, "videotools", "autocrop", autocropNoContent, nil)
	}
	if rect.Width() < 2 || rect.Height() < 2 {
		return nil, services.Wrap(services.ErrTransform, "videotools", "autocrop", autocropInvalidFrame, nil)
	}
	v.deps.logger(env, "videotools").Info("autocrop bounds detected",
		logging.String("rect", rect.String()),
		logging.Int("threshold", int(v.deps.AutocropThreshold)),
	)
	return v.crop(ctx, env, rect)
}
