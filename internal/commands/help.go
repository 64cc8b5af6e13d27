package commands

import (
	"fmt"
	"html"
	"strings"

	"mediakit/internal/job"
)

// Help renders the help reply. With no topic it lists every command with its
// usage; with a topic it returns that command's detailed help.
func Help(reg *job.Registry, topic string) string {
	topic = strings.TrimLeft(strings.TrimSpace(topic), "/!.")
	if topic != "" {
		cmd, ok := reg.Lookup(topic)
		if !ok {
			return fmt.Sprintf("Unknown command: %s. Send /help for the list.", html.EscapeString(topic))
		}
		if cmd.Help != "" {
			return cmd.Help
		}
		return "<code>/" + html.EscapeString(cmd.Usage) + "</code>"
	}

	var b strings.Builder
	b.WriteString("<b>Available commands</b>\n")
	for _, cmd := range reg.Commands() {
		b.WriteString("<code>/")
		b.WriteString(html.EscapeString(cmd.Usage))
		b.WriteString("</code>\n")
	}
	b.WriteString("\nReply to a file with one of the commands above. Send <code>/help [command]</code> for details.")
	return b.String()
}
