package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestSubtitleAndVideoHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 600, Height: 600, Disposition: Disposition{AttachedPic: 1}},
			{CodecType: "video", Width: 1920, Height: 1080},
			{CodecType: "audio"},
			{CodecType: "subtitle", CodecName: "subrip"},
		},
	}
	if result.SubtitleStreamCount() != 1 {
		t.Fatalf("expected 1 subtitle stream, got %d", result.SubtitleStreamCount())
	}
	w, h, ok := result.Dimensions()
	if !ok || w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080 skipping cover art, got %dx%d ok=%v", w, h, ok)
	}
	if !result.HasAudio() {
		t.Fatal("expected audio")
	}
}

func TestDurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio", Duration: "12.5"},
			{CodecType: "video", Duration: "12.0"},
		},
	}
	if result.DurationSeconds() != 12.5 {
		t.Fatalf("expected stream duration fallback 12.5, got %v", result.DurationSeconds())
	}
	if _, _, ok := (Result{}).Dimensions(); ok {
		t.Fatal("expected no dimensions without video")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(t.Context(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
