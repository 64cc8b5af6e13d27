package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediakit/internal/commands"
	"mediakit/internal/job"
)

func newCommandsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "commands",
		Short:       "List the media commands the bot answers to",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := commands.NewRegistry(commands.Deps{})
			rows := make([][]string, 0, len(reg.Commands()))
			for _, c := range reg.Commands() {
				rows = append(rows, []string{c.Name, acceptsLabel(c), c.Usage})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Command", "Reply To", "Usage"}, rows, nil))
			return nil
		},
	}
}

func acceptsLabel(c job.Command) string {
	if !c.NeedsAttachment() {
		return "-"
	}
	kinds := make([]string, 0, len(c.Accepts))
	for _, kind := range c.Accepts {
		kinds = append(kinds, string(kind))
	}
	label := strings.Join(kinds, ", ")
	if len(c.Extensions) > 0 {
		label += " (" + strings.Join(c.Extensions, ", ") + ")"
	}
	return label
}
