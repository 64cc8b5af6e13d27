package job

import (
	"errors"
	"testing"

	"mediakit/internal/services"
)

func TestResolveDocumentExtension(t *testing.T) {
	cmd := Command{Name: "autotrans", Accepts: []Kind{KindDocument}, Extensions: []string{".srt"}, Reject: "Please reply to an .srt subtitle file to translate."}

	if _, err := Resolve(cmd, &Attachment{Kind: KindDocument, FileName: "movie.SRT"}); err != nil {
		t.Fatalf("expected .SRT to be accepted: %v", err)
	}
	_, err := Resolve(cmd, &Attachment{Kind: KindDocument, FileName: "movie.ass"})
	if !errors.Is(err, services.ErrInputRejected) {
		t.Fatalf("expected input rejection, got %v", err)
	}
	if services.UserMessage(err) != cmd.Reject {
		t.Fatalf("unexpected message %q", services.UserMessage(err))
	}
}

func TestResolveWithoutAttachmentRequirement(t *testing.T) {
	if _, err := Resolve(Command{Name: "help"}, nil); err != nil {
		t.Fatalf("expected help to need no attachment: %v", err)
	}
}

func TestAttachmentExt(t *testing.T) {
	tests := []struct {
		att  Attachment
		want string
	}{
		{Attachment{Kind: KindVideo, FileName: "Clip.MKV"}, "mkv"},
		{Attachment{Kind: KindVideo}, "mp4"},
		{Attachment{Kind: KindAudio, FileName: "voice"}, "mp3"},
		{Attachment{Kind: KindDocument, FileName: "x.s r t"}, "bin"},
	}
	for _, tt := range tests {
		if got := tt.att.Ext(); got != tt.want {
			t.Fatalf("Ext(%q) = %q, want %q", tt.att.FileName, got, tt.want)
		}
	}
}

func TestRegistryLookupAndOrder(t *testing.T) {
	reg := NewRegistry(Command{Name: "videotools"}, Command{Name: "autotrans"}, Command{Name: "convert"})
	if _, ok := reg.Lookup("CONVERT"); !ok {
		t.Fatal("expected case-insensitive lookup")
	}
	names := reg.Names()
	if len(names) != 3 || names[0] != "autotrans" || names[2] != "videotools" {
		t.Fatalf("unexpected order %v", names)
	}
}
