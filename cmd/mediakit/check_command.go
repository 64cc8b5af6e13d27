package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediakit/internal/daemon"
	"mediakit/internal/deps"
	"mediakit/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report dependency, directory and service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			configMessage := ctx.configPath
			if !ctx.configExists {
				configMessage += " (not found, using defaults)"
			}
			lines = append(lines, renderStatusLine("Config", statusInfo, configMessage, colorize))
			running, lockErr := daemon.InstanceRunning(cfg)
			switch {
			case lockErr != nil:
				lines = append(lines, renderStatusLine("Bot", statusWarn, lockErr.Error(), colorize))
			case running:
				lines = append(lines, renderStatusLine("Bot", statusOK, "Running", colorize))
			default:
				lines = append(lines, renderStatusLine("Bot", statusInfo, "Not running", colorize))
			}
			lines = append(lines, "")

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")

			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Network: !offline})
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			lines = append(lines, preflightLines(results, colorize)...)

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			missing := len(deps.Missing(statuses))
			failed := len(preflight.Failed(results))
			if missing > 0 || failed > 0 {
				return fmt.Errorf("%d missing dependencies, %d failed checks", missing, failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the Telegram and translation endpoint checks")
	return cmd
}
