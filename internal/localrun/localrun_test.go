package localrun

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediakit/internal/job"
	"mediakit/internal/services"
)

func upperCommand() job.Command {
	return job.Command{
		Name:       "upper",
		Usage:      "upper",
		Accepts:    []job.Kind{job.KindDocument},
		Extensions: []string{".txt"},
		Reject:     "Please reply to a .txt file.",
		Labels:     job.Labels{Progress: "Shouting...", Failure: "Error shouting"},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) > 0 {
				return nil, services.Reject(services.ErrArgumentInvalid, "Usage: upper")
			}
			return job.TransformFunc(func(_ context.Context, env job.Env) ([]job.Output, error) {
				data, err := os.ReadFile(env.Input)
				if err != nil {
					return nil, err
				}
				out := env.Workspace.Path("upper.txt")
				if err := os.WriteFile(out, bytes.ToUpper(data), 0o600); err != nil {
					return nil, err
				}
				return []job.Output{{Path: out, Kind: job.KindDocument, Caption: "<b>Done &amp; dusted</b>"}}, nil
			}), nil
		},
	}
}

func TestRunSavesOutputsAndCleansWorkspace(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(base, "notes.txt")
	if err := os.WriteFile(input, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	workRoot := filepath.Join(base, "work")
	outDir := filepath.Join(base, "out")
	runner := job.NewRunner(job.NewRegistry(upperCommand()), workRoot, "local", nil)

	var buf bytes.Buffer
	result, saved := Run(context.Background(), runner, Options{Input: input, Command: "upper", OutDir: outDir, Out: &buf})
	if !result.Succeeded() {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if len(saved) != 1 || saved[0] != filepath.Join(outDir, "upper.txt") {
		t.Fatalf("unexpected saved paths %v", saved)
	}
	data, err := os.ReadFile(saved[0])
	if err != nil || string(data) != "HELLO" {
		t.Fatalf("unexpected output %q %v", data, err)
	}
	if got := buf.String(); !strings.Contains(got, "Shouting...") || !strings.Contains(got, "Done & dusted") {
		t.Fatalf("unexpected terminal output %q", got)
	}
	entries, err := os.ReadDir(workRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty work root, found %d entries", len(entries))
	}
}

func TestRunRejectsWrongExtension(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(base, "clip.mp4")
	if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := job.NewRunner(job.NewRegistry(upperCommand()), filepath.Join(base, "work"), "local", nil)

	var buf bytes.Buffer
	result, saved := Run(context.Background(), runner, Options{Input: input, Command: "upper", OutDir: filepath.Join(base, "out"), Out: &buf})
	if result.Succeeded() || len(saved) != 0 {
		t.Fatalf("expected rejection, got %+v", result)
	}
	if strings.TrimSpace(buf.String()) != "Please reply to a .txt file." {
		t.Fatalf("unexpected reply %q", buf.String())
	}
}

func TestGuessKind(t *testing.T) {
	cases := map[string]job.Kind{
		"a.MP4":  job.KindVideo,
		"b.flac": job.KindAudio,
		"c.png":  job.KindPhoto,
		"d.srt":  job.KindDocument,
		"noext":  job.KindDocument,
	}
	for name, want := range cases {
		if got := GuessKind(name); got != want {
			t.Fatalf("GuessKind(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<b>Converted By:</b> bot &lt;3\n<b>Angle:</b> 90.0°")
	if got != "Converted By: bot <3\nAngle: 90.0°" {
		t.Fatalf("PlainText = %q", got)
	}
}
