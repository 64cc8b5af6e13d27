package commands

import (
	"context"
	"errors"
	"image"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/bmp"

	"mediakit/internal/job"
	"mediakit/internal/media/ffmpeg"
	"mediakit/internal/media/ffprobe"
)

// fakeMedia stands in for ffmpeg and ffprobe. Every ffmpeg call writes a small
// file at its output path; BMP requests receive frame.
type fakeMedia struct {
	mu     sync.Mutex
	calls  [][]string
	probe  ffprobe.Result
	frame  image.Image
	failOn string
}

func (f *fakeMedia) run(_ context.Context, _ string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), args...))
	f.mu.Unlock()
	if f.failOn != "" && slices.Contains(args, f.failOn) {
		return errors.New("exit status 1: simulated failure")
	}
	dest := args[len(args)-1]
	if slices.Contains(args, "bmp") && f.frame != nil {
		file, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer file.Close()
		return bmp.Encode(file, f.frame)
	}
	return os.WriteFile(dest, []byte("encoded"), 0o644)
}

func (f *fakeMedia) inspect(context.Context, string, string) (ffprobe.Result, error) {
	return f.probe, nil
}

func (f *fakeMedia) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func videoProbe(duration string, width, height int) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "video", Width: width, Height: height},
			{Index: 1, CodecType: "audio"},
		},
		Format: ffprobe.Format{Duration: duration},
	}
}

type upperTranslator struct{}

func (upperTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	if strings.Contains(text, "boom") {
		return "", errors.New("backend unavailable")
	}
	return strings.ToUpper(text), nil
}

func newTestDeps(media *fakeMedia) Deps {
	tool := ffmpeg.New("ffmpeg", nil)
	tool.WithCommandRunner(media.run)
	return Deps{
		FFmpeg:            tool,
		Probe:             media.inspect,
		FFprobeBinary:     "ffprobe",
		Translator:        upperTranslator{},
		DefaultLanguage:   "en",
		Synth:             ffmpeg.Synth{FPS: 24, Width: 640, Height: 360},
		MaxFrames:         50,
		AutocropThreshold: 30,
	}
}

// runCommand parses args and runs the transform against a fresh workspace
// whose input file holds content.
func runCommand(t *testing.T, cmd job.Command, att job.Attachment, content string, args ...string) ([]job.Output, error) {
	t.Helper()
	tr, err := cmd.Parse(args, att)
	if err != nil {
		t.Fatalf("Parse(%v) returned error: %v", args, err)
	}
	ws, err := job.NewWorkspace(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	t.Cleanup(func() { _ = ws.Release() })
	input := ws.Path("input." + att.Ext())
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return tr.Run(context.Background(), job.Env{
		Input:      input,
		Attachment: att,
		Workspace:  ws,
		Agent:      "mediakit",
	})
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

var (
	videoAttachment = job.Attachment{ID: "v1", Kind: job.KindVideo, FileName: "clip.mp4"}
	audioAttachment = job.Attachment{ID: "a1", Kind: job.KindAudio, FileName: "song.mp3"}
	srtAttachment   = job.Attachment{ID: "d1", Kind: job.KindDocument, FileName: "movie.srt"}
)
