package job

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"mediakit/internal/services"
)

// Command describes one chat command. Commands are registered once at
// startup and never mutated.
type Command struct {
	Name  string
	Usage string
	Help  string
	// Accepts lists the attachment kinds the command works on. Empty means the
	// command needs no attachment.
	Accepts []Kind
	// Extensions restricts document attachments by file extension (".srt").
	Extensions []string
	// Reject is the reply sent when the attachment is missing or unusable.
	Reject string
	Labels Labels
	// Parse validates the arguments and returns the transform to run.
	Parse func(args []string, att Attachment) (Transform, error)
}

// NeedsAttachment reports whether the command operates on a replied-to file.
func (c Command) NeedsAttachment() bool {
	return len(c.Accepts) > 0
}

// Resolve checks that att is an attachment cmd can work on. It never touches
// the filesystem.
func Resolve(cmd Command, att *Attachment) (Attachment, error) {
	if !cmd.NeedsAttachment() {
		if att == nil {
			return Attachment{}, nil
		}
		return *att, nil
	}
	if att == nil || !slices.Contains(cmd.Accepts, att.Kind) {
		return Attachment{}, services.Reject(services.ErrInputRejected, cmd.Reject)
	}
	if len(cmd.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(att.FileName))
		if !slices.Contains(cmd.Extensions, ext) {
			return Attachment{}, services.Reject(services.ErrInputRejected, cmd.Reject)
		}
	}
	return *att, nil
}

// Registry holds the commands the bot answers to.
type Registry struct {
	commands map[string]Command
}

// NewRegistry indexes the provided commands by name.
func NewRegistry(commands ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(commands))}
	for _, cmd := range commands {
		r.commands[strings.ToLower(cmd.Name)] = cmd
	}
	return r
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	if r == nil {
		return Command{}, false
	}
	cmd, ok := r.commands[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// Commands returns every registered command sorted by name.
func (r *Registry) Commands() []Command {
	if r == nil {
		return nil
	}
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered command names sorted.
func (r *Registry) Names() []string {
	cmds := r.Commands()
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}
	return names
}
