package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mediakit/internal/commands"
	"mediakit/internal/config"
	"mediakit/internal/job"
	"mediakit/internal/logging"
)

// Bot receives commands from Telegram and runs them as jobs.
type Bot struct {
	api         botAPI
	updates     updateSource
	runner      *job.Runner
	prefixes    []string
	botName     string
	concurrency int
	pollTimeout int
	client      *http.Client
	logger      *slog.Logger
	wg          sync.WaitGroup
}

type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// New authenticates against the Bot API described by cfg.
func New(cfg *config.Config, runner *job.Runner, logger *slog.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("telegram: config is nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("telegram: runner is nil")
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Telegram.Token, cfg.Telegram.APIEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: authenticate: %w", err)
	}
	api.Debug = cfg.Telegram.Debug
	bot := newBot(api, runner, cfg.Telegram, logger)
	bot.updates = api
	bot.botName = api.Self.UserName
	return bot, nil
}

func newBot(api botAPI, runner *job.Runner, settings config.Telegram, logger *slog.Logger) *Bot {
	concurrency := settings.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Bot{
		api:         api,
		runner:      runner,
		prefixes:    append([]string(nil), settings.CommandPrefixes...),
		concurrency: concurrency,
		pollTimeout: settings.PollTimeout,
		client:      &http.Client{},
		logger:      logging.NewComponentLogger(logger, "telegram"),
	}
}

// Name returns the bot's Telegram username.
func (b *Bot) Name() string {
	return b.botName
}

// Run polls for updates until ctx is cancelled, then waits for in-flight jobs.
func (b *Bot) Run(ctx context.Context) error {
	if b.updates == nil {
		return fmt.Errorf("telegram: bot has no update source")
	}
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.updates.GetUpdatesChan(u)
	sem := make(chan struct{}, b.concurrency)

	b.logger.Info("telegram bot polling",
		logging.String("bot", b.botName),
		logging.Int("concurrency", b.concurrency),
		logging.String("prefixes", strings.Join(b.prefixes, " ")),
		logging.String(logging.FieldEventType, "bot_polling"),
	)

	defer func() {
		b.updates.StopReceivingUpdates()
		b.wg.Wait()
		b.logger.Info("telegram bot stopped", logging.String(logging.FieldEventType, "bot_stopped"))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg := update.Message
			if msg == nil {
				continue
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					return
				}
				defer func() { <-sem }()
				b.handle(ctx, msg)
			}()
		}
	}
}

// handle routes one message. Unknown commands are ignored so the bot stays
// quiet in groups shared with other bots.
func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	inv, ok := ParseCommand(text, b.prefixes, b.botName)
	if !ok {
		return
	}
	conv := NewConversation(b.api, b.client, msg, b.logger)

	if inv.Verb == "help" || inv.Verb == "start" {
		topic := ""
		if len(inv.Args) > 0 {
			topic = inv.Args[0]
		}
		if err := conv.ReplyHTML(ctx, commands.Help(b.runner.Registry(), topic)); err != nil {
			b.logger.Warn("help reply failed", logging.Error(err))
		}
		return
	}
	if _, known := b.runner.Registry().Lookup(inv.Verb); !known {
		b.logger.Debug("ignoring unknown command", logging.String("verb", inv.Verb))
		return
	}

	req := job.Request{
		Command: inv.Verb,
		Args:    inv.Args,
	}
	if msg.Chat != nil {
		req.Chat = msg.Chat.ID
	}
	if msg.From != nil {
		req.Requester = msg.From.ID
	}
	req.Attachment = AttachmentFromMessage(msg.ReplyToMessage)
	b.runner.Run(ctx, conv, req)
}

// registerCommands publishes the command list shown in Telegram clients.
func (b *Bot) registerCommands() {
	cmds := b.runner.Registry().Commands()
	list := make([]tgbotapi.BotCommand, 0, len(cmds)+1)
	for _, cmd := range cmds {
		list = append(list, tgbotapi.BotCommand{Command: cmd.Name, Description: describe(cmd)})
	}
	list = append(list, tgbotapi.BotCommand{Command: "help", Description: "List commands or show help for one"})
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(list...)); err != nil {
		logging.WarnWithContext(b.logger, "command list not registered", "bot_commands_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the bot token permissions"),
			logging.String(logging.FieldImpact, "clients will not suggest commands"),
		)
	}
}

func describe(cmd job.Command) string {
	desc := cmd.Usage
	if len(desc) > 256 {
		desc = desc[:256]
	}
	return desc
}
