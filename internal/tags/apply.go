package tags

import (
	"fmt"
	"strings"

	"mediakit/internal/services"
)

// Apply writes fields into the file at path. ext selects the tag format and is
// matched case-insensitively with or without a leading dot.
func Apply(path, ext string, fields Fields) error {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	switch ext {
	case "mp4", "m4a", "m4v":
		return writeMP4(path, fields)
	case "mp3":
		return writeMP3(path, fields)
	default:
		return UnsupportedFormat(ext)
	}
}

// UnsupportedFormat is the error returned for extensions Apply cannot tag.
func UnsupportedFormat(ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	return services.Wrap(services.ErrTransform, "tags", "select format",
		fmt.Sprintf("Unsupported file format: %s. Supported formats: mp4, mp3.", ext), nil)
}

// Supported reports whether Apply can write tags for the extension.
func Supported(ext string) bool {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case "mp4", "m4a", "m4v", "mp3":
		return true
	default:
		return false
	}
}
