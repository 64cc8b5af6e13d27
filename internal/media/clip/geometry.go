package clip

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"mediakit/internal/services"
)

// Rect is a crop rectangle in pixel coordinates. X2 and Y2 are exclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Width returns the horizontal extent.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d-%d,%d", r.X1, r.Y1, r.X2, r.Y2)
}

// Within reports whether r is non-empty and lies inside a width x height frame.
func (r Rect) Within(width, height int) error {
	if r.X1 < 0 || r.Y1 < 0 || r.X1 >= r.X2 || r.Y1 >= r.Y2 || r.X2 > width || r.Y2 > height {
		return services.Reject(services.ErrArgumentInvalid, "Invalid crop coordinates.")
	}
	return nil
}

// ContentBounds returns the smallest rectangle holding every pixel whose
// grayscale intensity is strictly greater than threshold. ok is false when the
// image holds no such pixel.
func ContentBounds(img image.Image, threshold uint8) (Rect, bool) {
	if img == nil {
		return Rect{}, false
	}
	bounds := img.Bounds()
	gray, isGray := img.(*image.Gray)
	if !isGray {
		gray = image.NewGray(bounds)
		draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	}

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y <= threshold {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX || maxY < minY {
		return Rect{}, false
	}
	return Rect{
		X1: minX - bounds.Min.X,
		Y1: minY - bounds.Min.Y,
		X2: maxX + 1 - bounds.Min.X,
		Y2: maxY + 1 - bounds.Min.Y,
	}, true
}

// LoadBMP decodes a BMP image from disk.
func LoadBMP(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()
	img, err := bmp.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}
