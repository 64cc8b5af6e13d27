package localrun

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"mediakit/internal/fileutil"
	"mediakit/internal/job"
)

var htmlTag = regexp.MustCompile(`<[^>]+>`)

var extensionKinds = map[string]job.Kind{
	".mp4":  job.KindVideo,
	".mkv":  job.KindVideo,
	".mov":  job.KindVideo,
	".webm": job.KindVideo,
	".avi":  job.KindVideo,
	".m4v":  job.KindVideo,
	".mp3":  job.KindAudio,
	".m4a":  job.KindAudio,
	".aac":  job.KindAudio,
	".ogg":  job.KindAudio,
	".opus": job.KindAudio,
	".wav":  job.KindAudio,
	".flac": job.KindAudio,
	".jpg":  job.KindPhoto,
	".jpeg": job.KindPhoto,
	".png":  job.KindPhoto,
}

// GuessKind maps a file name to the attachment kind a chat client would
// report for it. Unknown extensions are documents.
func GuessKind(name string) job.Kind {
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(name))]; ok {
		return kind
	}
	return job.KindDocument
}

// Conversation implements job.Conversation over the local filesystem.
type Conversation struct {
	source string
	outDir string
	out    io.Writer

	mu    sync.Mutex
	saved []string
}

// NewConversation returns a conversation that reads the attachment from
// source and moves outputs into outDir. Messages go to out.
func NewConversation(source, outDir string, out io.Writer) *Conversation {
	if out == nil {
		out = io.Discard
	}
	return &Conversation{source: source, outDir: outDir, out: out}
}

// Download copies the source file into the workspace.
func (c *Conversation) Download(_ context.Context, _ job.Attachment, dest string) error {
	if c.source == "" {
		return errors.New("no input file")
	}
	return fileutil.CopyFile(c.source, dest)
}

// Upload moves the output out of the workspace before it is released.
func (c *Conversation) Upload(_ context.Context, out job.Output) error {
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	target := filepath.Join(c.outDir, filepath.Base(out.Path))
	if err := fileutil.MoveFile(out.Path, target); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(out.Path), err)
	}
	c.mu.Lock()
	c.saved = append(c.saved, target)
	c.mu.Unlock()

	fmt.Fprintf(c.out, "saved %s (%s)\n", target, out.Kind)
	if caption := PlainText(out.Caption); caption != "" {
		for _, line := range strings.Split(caption, "\n") {
			fmt.Fprintf(c.out, "  %s\n", line)
		}
	}
	return nil
}

// Reply prints text.
func (c *Conversation) Reply(_ context.Context, text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Progress prints text. There is nothing to retract afterwards.
func (c *Conversation) Progress(_ context.Context, text string) (func(), error) {
	_, err := fmt.Fprintln(c.out, text)
	return func() {}, err
}

// Saved returns the paths of the files moved into the output directory.
func (c *Conversation) Saved() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.saved...)
}

// PlainText strips the HTML markup used in chat captions.
func PlainText(caption string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTag.ReplaceAllString(caption, "")))
}

// Options describes one local invocation.
type Options struct {
	Input   string
	Kind    job.Kind
	Command string
	Args    []string
	OutDir  string
	Out     io.Writer
}

// Run executes one command against a local file.
func Run(ctx context.Context, runner *job.Runner, opts Options) (job.Result, []string) {
	conv := NewConversation(opts.Input, opts.OutDir, opts.Out)
	req := job.Request{
		Command: opts.Command,
		Args:    opts.Args,
	}
	if opts.Input != "" {
		kind := opts.Kind
		if kind == "" {
			kind = GuessKind(opts.Input)
		}
		att := &job.Attachment{
			ID:       opts.Input,
			Kind:     kind,
			FileName: filepath.Base(opts.Input),
		}
		if info, err := os.Stat(opts.Input); err == nil {
			att.Size = info.Size()
		}
		req.Attachment = att
	}
	result := runner.Run(ctx, conv, req)
	return result, conv.Saved()
}
