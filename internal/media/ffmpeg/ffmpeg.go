package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mediakit/internal/logging"
	"mediakit/internal/services"
)

// CommandRunner executes an external binary. The default implementation
// returns the combined output inside the error when the process fails.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// evenScale rounds both dimensions down to the nearest even value so libx264
// accepts yuv420p output.
const evenScale = "scale=trunc(iw/2)*2:trunc(ih/2)*2"

// Synth describes the black video track synthesized for audio-only input.
type Synth struct {
	Duration float64
	FPS      int
	Width    int
	Height   int
}

// Tool runs ffmpeg operations.
type Tool struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// New constructs a Tool for the given ffmpeg binary.
func New(binary string, logger *slog.Logger) *Tool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Tool{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (t *Tool) WithCommandRunner(r CommandRunner) {
	if t != nil && r != nil {
		t.run = r
	}
}

// Binary returns the ffmpeg executable the tool invokes.
func (t *Tool) Binary() string {
	if t == nil {
		return ""
	}
	return t.binary
}

// TranscodeVideo re-encodes src into an H.264/AAC MP4 at dest.
func (t *Tool) TranscodeVideo(ctx context.Context, src, dest string) error {
	args := inputArgs(src)
	args = append(args, "-map", "0:v:0", "-map", "0:a?", "-vf", evenScale)
	args = append(args, videoCodecArgs()...)
	args = append(args, dest)
	return t.exec(ctx, "transcode video", dest, args)
}

// AudioToVideo combines the audio in src with a black video track of the
// synthesized size and frame rate, trimmed to the source duration.
func (t *Tool) AudioToVideo(ctx context.Context, src, dest string, synth Synth) error {
	if synth.Duration <= 0 || math.IsNaN(synth.Duration) {
		return services.Wrap(services.ErrTransform, "ffmpeg", "audio to video", "Audio duration is unknown", nil)
	}
	if synth.FPS <= 0 || synth.Width <= 0 || synth.Height <= 0 {
		return services.Wrap(services.ErrConfiguration, "ffmpeg", "audio to video", "Invalid synthesis parameters", nil)
	}
	source := fmt.Sprintf("color=c=black:s=%dx%d:r=%d", synth.Width&^1, synth.Height&^1, synth.FPS)
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-f", "lavfi", "-i", source,
		"-i", src,
		"-map", "0:v:0", "-map", "1:a:0",
		"-t", formatSeconds(synth.Duration),
		"-r", strconv.Itoa(synth.FPS),
	}
	args = append(args, videoCodecArgs()...)
	args = append(args, dest)
	return t.exec(ctx, "audio to video", dest, args)
}

// ExtractAudioMP3 writes the first audio stream of src as MP3.
func (t *Tool) ExtractAudioMP3(ctx context.Context, src, dest string) error {
	args := inputArgs(src)
	args = append(args, "-vn", "-map", "0:a:0", "-c:a", "libmp3lame", "-q:a", "2", dest)
	return t.exec(ctx, "extract audio", dest, args)
}

// ExtractSubtitle writes the first subtitle stream of src as SubRip.
func (t *Tool) ExtractSubtitle(ctx context.Context, src, dest string) error {
	args := inputArgs(src)
	args = append(args, "-map", "0:s:0", "-c:s", "srt", dest)
	return t.exec(ctx, "extract subtitle", dest, args)
}

// Frame writes a single JPEG frame taken at the given offset.
func (t *Tool) Frame(ctx context.Context, src string, at float64, dest string) error {
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-ss", formatSeconds(at), "-i", src,
		"-frames:v", "1", "-q:v", "2", dest}
	return t.exec(ctx, "extract frame", dest, args)
}

// GrayFrame writes a luminance-only BMP frame taken at the given offset. The
// BMP encoder has no gray pixel format, so gray values are stored as bgr24.
func (t *Tool) GrayFrame(ctx context.Context, src string, at float64, dest string) error {
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-ss", formatSeconds(at), "-i", src,
		"-frames:v", "1", "-vf", "format=gray,format=bgr24", "-c:v", "bmp", "-f", "image2", dest}
	return t.exec(ctx, "sample frame", dest, args)
}

// Rotate turns every frame clockwise by degrees and grows the canvas so the
// rotated picture is never clipped. Uncovered corners are filled black.
func (t *Tool) Rotate(ctx context.Context, src, dest string, degrees float64) error {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return services.Wrap(services.ErrArgumentInvalid, "ffmpeg", "rotate", "Rotation angle must be a finite number", nil)
	}
	radians := strconv.FormatFloat(degrees*math.Pi/180, 'f', 6, 64)
	filter := fmt.Sprintf("rotate=a=%s:ow=rotw(%s):oh=roth(%s):c=black,%s", radians, radians, radians, evenScale)
	args := inputArgs(src)
	args = append(args, "-map", "0:v:0", "-map", "0:a?", "-vf", filter)
	args = append(args, videoCodecArgs()...)
	args = append(args, dest)
	return t.exec(ctx, "rotate", dest, args)
}

// Cut writes the [start, end) span of src.
func (t *Tool) Cut(ctx context.Context, src, dest string, start, end float64) error {
	if start < 0 || end <= start {
		return services.Wrap(services.ErrArgumentInvalid, "ffmpeg", "cut", "Invalid start or end time.", nil)
	}
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-ss", formatSeconds(start), "-i", src,
		"-t", formatSeconds(end - start),
		"-map", "0:v:0", "-map", "0:a?", "-vf", evenScale}
	args = append(args, videoCodecArgs()...)
	args = append(args, dest)
	return t.exec(ctx, "cut", dest, args)
}

// Crop keeps the width x height region whose top-left corner is (x, y). Odd
// sizes are rounded down to even.
func (t *Tool) Crop(ctx context.Context, src, dest string, x, y, width, height int) error {
	width &^= 1
	height &^= 1
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return services.Wrap(services.ErrArgumentInvalid, "ffmpeg", "crop", "Invalid crop coordinates.", nil)
	}
	filter := fmt.Sprintf("crop=%d:%d:%d:%d", width, height, x, y)
	args := inputArgs(src)
	args = append(args, "-map", "0:v:0", "-map", "0:a?", "-vf", filter)
	args = append(args, videoCodecArgs()...)
	args = append(args, dest)
	return t.exec(ctx, "crop", dest, args)
}

func (t *Tool) exec(ctx context.Context, operation, dest string, args []string) error {
	if t == nil {
		return services.Wrap(services.ErrConfiguration, "ffmpeg", operation, "ffmpeg tool not initialized", nil)
	}
	t.logger.Debug("executing ffmpeg",
		logging.String("operation", operation),
		logging.String("output", dest),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := t.run(ctx, t.binary, args...); err != nil {
		_ = os.Remove(dest)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "ffmpeg", operation, "ffmpeg timed out", err)
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", operation, "ffmpeg failed", err)
	}
	return nil
}

func inputArgs(src string) []string {
	return []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-y", "-i", src}
}

func videoCodecArgs() []string {
	return []string{
		"-c:v", "libx264", "-preset", "veryfast", "-pix_fmt", "yuv420p",
		"-c:a", "aac", "-b:a", "192k",
		"-movflags", "+faststart",
	}
}

func formatSeconds(value float64) string {
	if value < 0 {
		value = 0
	}
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
