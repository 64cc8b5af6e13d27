package commands

import (
	"context"
	"html"
	"strings"

	"mediakit/internal/fileutil"
	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/services"
	"mediakit/internal/tags"
)

const metadataHelp = `Command: <code>/metadata [json_data]</code> [reply to video/audio]
Desc: Edit the tags of a video or audio file from a JSON object.
Supported formats: MP4 (mp4, m4a, m4v) and MP3.
JSON format example:
<code>{"title": "My Song", "artist": "Artist Name", "album": "Album Name", "year": "2023", "genre": "Pop", "comment": "My Comment"}</code>
MP4 files also accept any other key as a custom tag. MP3 files accept ID3 names such as title, artist, album, date, genre, tracknumber.
Example: <code>/metadata {"title": "New Title", "artist": "New Artist"}</code>`

// Metadata rewrites container tags on a copy of the attachment.
func Metadata(deps Deps) job.Command {
	return job.Command{
		Name:    "metadata",
		Usage:   "metadata <json>",
		Help:    metadataHelp,
		Accepts: []job.Kind{job.KindVideo, job.KindAudio},
		Reject:  "Please reply to a video or audio file to edit metadata.",
		Labels: job.Labels{
			Progress: "Processing metadata update...",
			Failure:  "Error updating metadata",
		},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			if len(args) == 0 {
				return nil, argumentError(`Please provide metadata as a JSON string (e.g., /metadata {"title": "New Title"}).`)
			}
			fields, err := tags.ParseFields(strings.Join(args, " "))
			if err != nil {
				return nil, err
			}
			return &metadata{deps: deps, fields: fields}, nil
		},
	}
}

type metadata struct {
	deps   Deps
	fields tags.Fields
}

func (m *metadata) Run(_ context.Context, env job.Env) ([]job.Output, error) {
	ext := env.Attachment.Ext()
	if !tags.Supported(ext) {
		return nil, tags.UnsupportedFormat(ext)
	}
	dest := env.Workspace.Path("output." + ext)
	if err := fileutil.CopyFileVerified(env.Input, dest); err != nil {
		return nil, services.Wrap(services.ErrTransform, "metadata", "copy input", "Could not copy the media file", err)
	}
	if err := tags.Apply(dest, ext, m.fields); err != nil {
		return nil, err
	}
	m.deps.logger(env, "metadata").Info("tags written",
		logging.String("format", ext),
		logging.Int("field_count", len(m.fields)),
	)

	kind := job.KindAudio
	if env.Attachment.Kind == job.KindVideo {
		kind = job.KindVideo
	}
	keys := m.fields.Keys()
	for i, key := range keys {
		keys[i] = html.EscapeString(key)
	}
	caption := byLine("Metadata Updated", env.Agent) + "\n<b>Updated Fields:</b> " + strings.Join(keys, ", ")
	return []job.Output{{Path: dest, Kind: kind, Caption: caption}}, nil
}
