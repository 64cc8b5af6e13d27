package clip

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func letterboxed(width, height int, content Rect) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	for y := content.Y1; y < content.Y2; y++ {
		for x := content.X1; x < content.X2; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	return img
}

func TestContentBoundsFindsPicture(t *testing.T) {
	want := Rect{X1: 4, Y1: 10, X2: 60, Y2: 38}
	got, ok := ContentBounds(letterboxed(64, 48, want), 30)
	if !ok {
		t.Fatal("expected content")
	}
	if got != want {
		t.Fatalf("ContentBounds = %v, want %v", got, want)
	}
}

func TestContentBoundsIgnoresDarkNoise(t *testing.T) {
	img := letterboxed(32, 32, Rect{X1: 8, Y1: 8, X2: 16, Y2: 16})
	img.Set(0, 0, color.RGBA{R: 30, G: 30, B: 30, A: 255})
	got, ok := ContentBounds(img, 30)
	if !ok || got != (Rect{X1: 8, Y1: 8, X2: 16, Y2: 16}) {
		t.Fatalf("expected noise at threshold to be ignored, got %v ok=%v", got, ok)
	}
}

func TestContentBoundsAllBlack(t *testing.T) {
	if _, ok := ContentBounds(image.NewGray(image.Rect(0, 0, 16, 16)), 30); ok {
		t.Fatal("expected no content in a black frame")
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		rect Rect
		ok   bool
	}{
		{Rect{X1: 100, Y1: 100, X2: 500, Y2: 300}, true},
		{Rect{X1: 100, Y1: 100, X2: 500, Y2: 400}, false},
		{Rect{X1: 0, Y1: 0, X2: 640, Y2: 360}, true},
		{Rect{X1: 100, Y1: 100, X2: 100, Y2: 300}, false},
		{Rect{X1: 0, Y1: 0, X2: 641, Y2: 360}, false},
		{Rect{X1: 10, Y1: 300, X2: 20, Y2: 200}, false},
	}
	for _, tt := range tests {
		if err := tt.rect.Within(640, 360); (err == nil) != tt.ok {
			t.Fatalf("%v.Within err=%v want ok=%v", tt.rect, err, tt.ok)
		}
	}
}

func TestLoadBMPRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create bmp: %v", err)
	}
	if err := bmp.Encode(file, letterboxed(20, 10, Rect{X1: 2, Y1: 3, X2: 18, Y2: 7})); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	file.Close()

	img, err := LoadBMP(path)
	if err != nil {
		t.Fatalf("LoadBMP returned error: %v", err)
	}
	got, ok := ContentBounds(img, 30)
	if !ok || got != (Rect{X1: 2, Y1: 3, X2: 18, Y2: 7}) {
		t.Fatalf("unexpected bounds after round trip: %v ok=%v", got, ok)
	}
	if _, err := LoadBMP(filepath.Join(t.TempDir(), "missing.bmp")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
