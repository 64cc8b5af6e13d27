package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"mediakit/internal/job"
)

const rotasiHelp = `Command: <code>/rotasi [angle]</code> [reply to video]
Desc: Rotate a video clockwise by the given angle in degrees. The frame grows so nothing is clipped.
Example: <code>/rotasi 90</code> rotates 90 degrees clockwise, <code>/rotasi -90</code> 90 degrees counterclockwise.
Supported angles: any number (90, 180, -90, 45, 12.5, ...).`

const rotasiUsage = "Please specify a valid rotation angle in degrees (e.g., /rotasi 90)."

// Rotasi rotates every frame of a video.
func Rotasi(deps Deps) job.Command {
	return job.Command{
		Name:    "rotasi",
		Usage:   "rotasi <degrees>",
		Help:    rotasiHelp,
		Accepts: []job.Kind{job.KindVideo},
		Reject:  "Please reply to a video file to rotate.",
		Labels: job.Labels{
			Progress: "Processing video rotation...",
			Failure:  "Error rotating video",
		},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) < 1 {
				return nil, argumentError(rotasiUsage)
			}
			angle, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(angle) || math.IsInf(angle, 0) {
				return nil, argumentError(rotasiUsage)
			}
			return &rotasi{deps: deps, angle: angle}, nil
		},
	}
}

type rotasi struct {
	deps  Deps
	angle float64
}

func (r *rotasi) Run(ctx context.Context, env job.Env) ([]job.Output, error) {
	dest := env.Workspace.Path("rotated.mp4")
	if err := r.deps.FFmpeg.Rotate(ctx, env.Input, dest, r.angle); err != nil {
		return nil, err
	}
	return []job.Output{{
		Path:    dest,
		Kind:    job.KindVideo,
		Caption: fmt.Sprintf("%s (Angle: %s°)", byLine("Rotated", env.Agent), formatDegrees(r.angle)),
	}}, nil
}
