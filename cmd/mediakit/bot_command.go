package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediakit/internal/commands"
	"mediakit/internal/daemon"
	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/telegram"
)

func newBotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), ctx)
		},
	}
}

func runBot(cmdCtx context.Context, ctx *commandContext) error {
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cmdDeps, err := commands.DepsFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	runner := job.NewRunner(commands.NewRegistry(cmdDeps), cfg.Paths.WorkDir, cfg.Telegram.AgentName, logger)

	bot, err := telegram.New(cfg, runner, logger)
	if err != nil {
		return fmt.Errorf("connect to telegram: %w", err)
	}

	d, err := daemon.New(cfg, bot, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	if err := d.Start(signalCtx); err != nil {
		return err
	}
	defer d.Stop()

	select {
	case <-signalCtx.Done():
		logger.Info("mediakit bot shutting down")
	case <-d.Done():
	}
	return d.Err()
}
