package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"

	"mediakit/internal/services"
)

// MP3Frames maps friendly field names to ID3v2.4 text frames. Keys outside
// this table are rejected by the MP3 writer.
var MP3Frames = map[string]string{
	"album":           "TALB",
	"albumartist":     "TPE2",
	"albumartistsort": "TSO2",
	"albumsort":       "TSOA",
	"arranger":        "TPE4",
	"artist":          "TPE1",
	"artistsort":      "TSOP",
	"author":          "TOLY",
	"bpm":             "TBPM",
	"compilation":     "TCMP",
	"composer":        "TCOM",
	"composersort":    "TSOC",
	"conductor":       "TPE3",
	"copyright":       "TCOP",
	"date":            "TDRC",
	"discnumber":      "TPOS",
	"discsubtitle":    "TSST",
	"encodedby":       "TENC",
	"genre":           "TCON",
	"isrc":            "TSRC",
	"language":        "TLAN",
	"length":          "TLEN",
	"lyricist":        "TEXT",
	"media":           "TMED",
	"mood":            "TMOO",
	"organization":    "TPUB",
	"originaldate":    "TDOR",
	"title":           "TIT2",
	"titlesort":       "TSOT",
	"tracknumber":     "TRCK",
	"version":         "TIT3",
}

func writeMP3(path string, fields Fields) error {
	frames := make([]string, len(fields))
	for i, field := range fields {
		frame, ok := MP3Frames[strings.ToLower(field.Key)]
		if !ok {
			return services.Wrap(services.ErrTransform, "tags", "map mp3 key",
				fmt.Sprintf("%q is not a valid key for MP3 tags", field.Key), nil)
		}
		frames[i] = frame
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return services.Wrap(services.ErrTransform, "tags", "open mp3", "Failed to read MP3 tags", err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	for i, field := range fields {
		tag.AddTextFrame(frames[i], id3v2.EncodingUTF8, field.Value)
	}
	if err := tag.Save(); err != nil {
		return services.Wrap(services.ErrTransform, "tags", "write mp3",
			fmt.Sprintf("Failed to write %d MP3 tag(s)", len(fields)), err)
	}
	return nil
}
