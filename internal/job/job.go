package job

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Kind identifies what sort of media an attachment or output is.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
	KindPhoto    Kind = "photo"
)

// Attachment is the media object carried by the replied-to message.
type Attachment struct {
	ID       string
	Kind     Kind
	FileName string
	MimeType string
	Size     int64
	// Duration is the transport-reported length in seconds, or 0 when unknown.
	Duration int
}

// Ext returns the lower-case file extension without the dot, falling back to
// a default for the attachment kind when the file name has none.
func (a Attachment) Ext() string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(a.FileName), "."))
	if isSafeExt(ext) {
		return ext
	}
	switch a.Kind {
	case KindVideo:
		return "mp4"
	case KindAudio:
		return "mp3"
	case KindPhoto:
		return "jpg"
	default:
		return "bin"
	}
}

func isSafeExt(ext string) bool {
	if ext == "" || len(ext) > 8 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Request is one command invocation as received from the transport.
type Request struct {
	Requester  int64
	Chat       int64
	Command    string
	Args       []string
	Attachment *Attachment
}

// Output is one file produced by a Transform.
type Output struct {
	Path    string
	Kind    Kind
	Caption string
}

// Conversation is the transport the job talks back through.
type Conversation interface {
	// Download stores the attachment at dest.
	Download(ctx context.Context, att Attachment, dest string) error
	// Upload sends an output as a reply to the triggering message.
	Upload(ctx context.Context, out Output) error
	// Reply sends a plain text reply.
	Reply(ctx context.Context, text string) error
	// Progress posts a status message and returns a func that removes it.
	Progress(ctx context.Context, text string) (func(), error)
}

// Env is what a Transform sees while it runs.
type Env struct {
	Input      string
	Attachment Attachment
	Workspace  *Workspace
	Agent      string
	Logger     *slog.Logger
}

// Transform performs a command's single media operation.
type Transform interface {
	Run(ctx context.Context, env Env) ([]Output, error)
}

// TransformFunc adapts a function to Transform.
type TransformFunc func(ctx context.Context, env Env) ([]Output, error)

// Run calls f.
func (f TransformFunc) Run(ctx context.Context, env Env) ([]Output, error) {
	return f(ctx, env)
}

// Labels are the user-facing texts shown while a job runs and when it fails.
type Labels struct {
	// Progress is posted once the job passes validation, e.g. "Converting to MP4...".
	Progress string
	// Failure prefixes runtime error replies, e.g. "Error converting media".
	Failure string
}

// Labeler is implemented by transforms whose labels depend on their arguments.
type Labeler interface {
	Labels() Labels
}
