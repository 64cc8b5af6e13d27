package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"

	"mediakit/internal/deps"
	"mediakit/internal/preflight"
)

func TestCommandsListsEveryVerb(t *testing.T) {
	out, _, err := runCLI(t, []string{"commands"}, "")
	if err != nil {
		t.Fatalf("commands: %v", err)
	}
	for _, verb := range []string{"autotrans", "convert", "metadata", "extract", "rotasi", "videotools"} {
		requireContains(t, out, verb)
	}
	requireContains(t, out, "document (.srt)")
}

func TestRunMetadataOnLocalFile(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "song.mp3")
	if err := os.WriteFile(input, []byte("not really mpeg audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(env.baseDir, "out")

	out, _, err := runCLI(t, []string{"run", "--input", input, "--out", outDir, "metadata", `{"title":`, `"Local"}`}, env.configPath)
	if err != nil {
		t.Fatalf("run metadata: %v\n%s", err, out)
	}
	requireContains(t, out, "Processing metadata update...")
	requireContains(t, out, "Updated Fields: title")

	tag, err := id3v2.Open(filepath.Join(outDir, "output.mp3"), id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open output tags: %v", err)
	}
	defer tag.Close()
	if tag.Title() != "Local" {
		t.Fatalf("unexpected title %q", tag.Title())
	}

	entries, err := os.ReadDir(env.cfg.Paths.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "job-") {
			t.Fatalf("workspace %s left behind", entry.Name())
		}
	}
}

func TestRunWithoutInputIsRejected(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", "convert", "mp4"}, env.configPath)
	if err == nil {
		t.Fatal("expected run to fail without an input file")
	}
	requireContains(t, out, "Please reply to a video or audio file to convert.")
	requireContains(t, err.Error(), "input_rejected")
}

func TestRunRejectsUnknownKind(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"run", "--kind", "sticker", "rotasi", "90"}, env.configPath); err == nil {
		t.Fatal("expected unknown kind to be rejected")
	}
}

func TestCheckOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--offline"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "ffmpeg version stub")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Not running")
	if strings.Contains(out, "Telegram") {
		t.Fatalf("offline check should skip the Telegram probe:\n%s", out)
	}
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Bot", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Bot:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Bot", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green wrapped line, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "FFmpeg", Available: true, Path: "/usr/bin/ffmpeg", Version: "ffmpeg version 6.1"},
		{Name: "FFprobe", Available: false, Detail: `binary "ffprobe" not found`},
		{Name: "Extra", Available: false, Optional: true, Detail: "not installed"},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] ffmpeg version 6.1") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERROR]") || !strings.Contains(lines[2], "[WARN] not installed") {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{{Name: "Work directory", Passed: true, Detail: "ok"}, {Name: "Translation", Detail: "timed out"}}, false)
	if !strings.Contains(lines[0], "[OK] ok") || !strings.Contains(lines[1], "[ERROR] timed out") {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := parseKind(" Video "); err != nil || kind != "video" {
		t.Fatalf("parseKind = %q %v", kind, err)
	}
	if kind, err := parseKind(""); err != nil || kind != "" {
		t.Fatalf("parseKind empty = %q %v", kind, err)
	}
}
