package clip

import (
	"math"

	"mediakit/internal/services"
)

// Segment is a half-open [Start, End) span of a clip, in seconds.
type Segment struct {
	Index int
	Start float64
	End   float64
}

// Length returns the span duration in seconds.
func (s Segment) Length() float64 {
	return s.End - s.Start
}

// Midpoint returns the default frame offset for a clip.
func Midpoint(duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) {
		return 0
	}
	return duration / 2
}

// FrameTimestamps returns n evenly spaced offsets where the k-th offset is
// k*duration/n. The first frame is always taken at 0.
func FrameTimestamps(duration float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, services.Reject(services.ErrArgumentInvalid, "Frame count must be at least 1.")
	}
	if duration <= 0 || math.IsNaN(duration) {
		return nil, services.Wrap(services.ErrTransform, "clip", "frame timestamps", "Video duration is unknown", nil)
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = float64(k) * duration / float64(n)
	}
	return out, nil
}

// CheckOffset validates a single frame offset against the clip duration.
func CheckOffset(at, duration float64) error {
	if at < 0 || at > duration || math.IsNaN(at) {
		return services.Reject(services.ErrArgumentInvalid, "Invalid time format or value: Specified time is out of video duration.")
	}
	return nil
}

// CheckCut validates a cut span: start must precede end and end must not run
// past the clip.
func CheckCut(start, end int, duration float64) error {
	if start < 0 || start >= end || float64(end) > duration {
		return services.Reject(services.ErrArgumentInvalid, "Invalid start or end time.")
	}
	return nil
}

// SplitSegments divides a clip into consecutive chunk-second parts. The part
// count is ceil(duration/chunk) and the last part holds the remainder when the
// duration is not a whole multiple of chunk.
func SplitSegments(duration float64, chunk int) ([]Segment, error) {
	if chunk <= 0 || float64(chunk) >= duration || math.IsNaN(duration) {
		return nil, services.Reject(services.ErrArgumentInvalid, "Invalid split duration.")
	}
	size := float64(chunk)
	whole := math.Floor(duration / size)
	parts := int(whole)
	if duration-whole*size > 0 {
		parts++
	}
	segments := make([]Segment, 0, parts)
	for i := range parts {
		start := float64(i) * size
		end := math.Min(start+size, duration)
		segments = append(segments, Segment{Index: i + 1, Start: start, End: end})
	}
	return segments, nil
}
