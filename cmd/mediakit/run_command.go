package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediakit/internal/commands"
	"mediakit/internal/config"
	"mediakit/internal/job"
	"mediakit/internal/localrun"
	"mediakit/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var kindFlag string
	var outDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run one media command against a local file",
		Long: "Run one media command against a local file. Flags must come before the command name\n" +
			"so that arguments such as negative angles reach the command unchanged.",
		Example: "  mediakit run --input clip.mp4 videotools cut 5 20\n" +
			"  mediakit run --input song.mp3 metadata '{\"title\": \"New Title\"}'",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}
			input := strings.TrimSpace(inputPath)
			if input != "" {
				if input, err = config.ExpandPath(input); err != nil {
					return fmt.Errorf("resolve input path: %w", err)
				}
			}
			target, err := config.ExpandPath(strings.TrimSpace(outDir))
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format, OutputPaths: []string{"stderr"}})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			cmdDeps, err := commands.DepsFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			runner := job.NewRunner(commands.NewRegistry(cmdDeps), cfg.Paths.WorkDir, cfg.Telegram.AgentName, logger)

			result, saved := localrun.Run(cmd.Context(), runner, localrun.Options{
				Input:   input,
				Kind:    kind,
				Command: args[0],
				Args:    args[1:],
				OutDir:  target,
				Out:     cmd.OutOrStdout(),
			})
			if !result.Succeeded() {
				return fmt.Errorf("%s failed (%s)", args[0], result.Class)
			}
			if len(saved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no files produced")
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "File the command operates on")
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Attachment kind: video, audio, document or photo (guessed from the extension when empty)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory that receives the produced files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log job progress to stderr")
	return cmd
}

func parseKind(value string) (job.Kind, error) {
	switch kind := job.Kind(strings.ToLower(strings.TrimSpace(value))); kind {
	case "":
		return "", nil
	case job.KindVideo, job.KindAudio, job.KindDocument, job.KindPhoto:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want video, audio, document or photo)", value)
	}
}
