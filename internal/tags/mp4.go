package tags

import (
	"fmt"

	"github.com/zhaarey/go-mp4tag"

	"mediakit/internal/services"
)

// MP4Aliases maps friendly field names to iTunes atom names.
var MP4Aliases = map[string]string{
	"title":   "©nam",
	"artist":  "©ART",
	"album":   "©alb",
	"year":    "©day",
	"genre":   "©gen",
	"comment": "©cmt",
}

// MP4Atom resolves a user key to an atom name. Atom names are accepted as
// keys too. ok is false for keys that are written as freeform atoms.
func MP4Atom(key string) (string, bool) {
	if atom, ok := MP4Aliases[key]; ok {
		return atom, true
	}
	for _, atom := range MP4Aliases {
		if key == atom {
			return atom, true
		}
	}
	return "", false
}

func buildMP4Tags(fields Fields) *mp4tag.MP4Tags {
	tags := &mp4tag.MP4Tags{Custom: map[string]string{}}
	for _, field := range fields {
		atom, ok := MP4Atom(field.Key)
		if !ok {
			tags.Custom[field.Key] = field.Value
			continue
		}
		switch atom {
		case "©nam":
			tags.Title = field.Value
		case "©ART":
			tags.Artist = field.Value
		case "©alb":
			tags.Album = field.Value
		case "©day":
			tags.Date = field.Value
		case "©gen":
			tags.CustomGenre = field.Value
		case "©cmt":
			tags.Comment = field.Value
		}
	}
	return tags
}

func writeMP4(path string, fields Fields) error {
	file, err := mp4tag.Open(path)
	if err != nil {
		return services.Wrap(services.ErrTransform, "tags", "open mp4", "Failed to read MP4 tags", err)
	}
	defer file.Close()
	if err := file.Write(buildMP4Tags(fields), []string{}); err != nil {
		return services.Wrap(services.ErrTransform, "tags", "write mp4",
			fmt.Sprintf("Failed to write %d MP4 tag(s)", len(fields)), err)
	}
	return nil
}
