package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mediakit/internal/job"
)

// AttachmentFromMessage describes the media carried by msg, or nil when it
// carries none. Documents with a video or audio MIME type are treated as that
// media kind.
func AttachmentFromMessage(msg *tgbotapi.Message) *job.Attachment {
	if msg == nil {
		return nil
	}
	switch {
	case msg.Video != nil:
		v := msg.Video
		return &job.Attachment{
			ID:       v.FileID,
			Kind:     job.KindVideo,
			FileName: v.FileName,
			MimeType: v.MimeType,
			Size:     int64(v.FileSize),
			Duration: v.Duration,
		}
	case msg.Audio != nil:
		a := msg.Audio
		return &job.Attachment{
			ID:       a.FileID,
			Kind:     job.KindAudio,
			FileName: a.FileName,
			MimeType: a.MimeType,
			Size:     int64(a.FileSize),
			Duration: a.Duration,
		}
	case msg.Voice != nil:
		v := msg.Voice
		return &job.Attachment{
			ID:       v.FileID,
			Kind:     job.KindAudio,
			FileName: "voice.ogg",
			MimeType: v.MimeType,
			Size:     int64(v.FileSize),
			Duration: v.Duration,
		}
	case msg.Document != nil:
		d := msg.Document
		return &job.Attachment{
			ID:       d.FileID,
			Kind:     documentKind(d.MimeType),
			FileName: d.FileName,
			MimeType: d.MimeType,
			Size:     int64(d.FileSize),
		}
	default:
		return nil
	}
}

func documentKind(mimeType string) job.Kind {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mime, "video/"):
		return job.KindVideo
	case strings.HasPrefix(mime, "audio/"):
		return job.KindAudio
	default:
		return job.KindDocument
	}
}
