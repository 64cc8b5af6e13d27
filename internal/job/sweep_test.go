package job

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepStaleRemovesOldJobDirsOnly(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, WorkspacePrefix+"old")
	fresh := filepath.Join(root, WorkspacePrefix+"fresh")
	other := filepath.Join(root, "keep-me")
	for _, dir := range []string{old, fresh, other} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(old, "input.mp4"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-2 * time.Hour)
	for _, dir := range []string{old, other} {
		if err := os.Chtimes(dir, past, past); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := SweepStale(root, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("SweepStale returned error: %v", err)
	}
	if len(removed) != 1 || removed[0] != old {
		t.Fatalf("unexpected removed set %v", removed)
	}
	for _, dir := range []string{fresh, other} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected %s to survive: %v", dir, err)
		}
	}
}

func TestSweepStaleMissingRoot(t *testing.T) {
	removed, err := SweepStale(filepath.Join(t.TempDir(), "absent"), time.Now())
	if err != nil || len(removed) != 0 {
		t.Fatalf("expected no-op, got %v %v", removed, err)
	}
}
