package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mediakit/internal/job"
	"mediakit/internal/logging"
)

// maxErrorBody bounds how much of a failed download response is kept.
const maxErrorBody = 200

// botAPI is the subset of *tgbotapi.BotAPI a conversation needs.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Conversation talks back to the chat a command came from.
type Conversation struct {
	api     botAPI
	client  *http.Client
	chatID  int64
	replyTo int
	logger  *slog.Logger
}

// NewConversation binds a conversation to the triggering message.
func NewConversation(api botAPI, client *http.Client, msg *tgbotapi.Message, logger *slog.Logger) *Conversation {
	if client == nil {
		client = http.DefaultClient
	}
	conv := &Conversation{api: api, client: client, logger: logging.NewComponentLogger(logger, "telegram")}
	if msg != nil {
		conv.replyTo = msg.MessageID
		if msg.Chat != nil {
			conv.chatID = msg.Chat.ID
		}
	}
	return conv
}

// Download fetches the attachment through the Bot API file endpoint.
func (c *Conversation) Download(ctx context.Context, att job.Attachment, dest string) error {
	link, err := c.api.GetFileDirectURL(att.ID)
	if err != nil {
		return fmt.Errorf("resolve file link: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("download file: status %s: %s", resp.Status, body)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create download target: %w", err)
	}
	written, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return fmt.Errorf("write download: %w", err)
	}
	c.logger.Debug("attachment downloaded",
		logging.String("kind", string(att.Kind)),
		logging.Int64("bytes", written),
	)
	return nil
}

// Upload sends out as a reply to the triggering message.
func (c *Conversation) Upload(_ context.Context, out job.Output) error {
	file := tgbotapi.FilePath(out.Path)
	var msg tgbotapi.Chattable
	switch out.Kind {
	case job.KindVideo:
		cfg := tgbotapi.NewVideo(c.chatID, file)
		cfg.Caption = out.Caption
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyToMessageID = c.replyTo
		cfg.SupportsStreaming = true
		msg = cfg
	case job.KindAudio:
		cfg := tgbotapi.NewAudio(c.chatID, file)
		cfg.Caption = out.Caption
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyToMessageID = c.replyTo
		msg = cfg
	case job.KindPhoto:
		cfg := tgbotapi.NewPhoto(c.chatID, file)
		cfg.Caption = out.Caption
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyToMessageID = c.replyTo
		msg = cfg
	default:
		cfg := tgbotapi.NewDocument(c.chatID, file)
		cfg.Caption = out.Caption
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.ReplyToMessageID = c.replyTo
		msg = cfg
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send %s: %w", out.Kind, err)
	}
	return nil
}

// Reply sends plain text. Error texts can carry tool output, so no parse mode
// is applied.
func (c *Conversation) Reply(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ReplyToMessageID = c.replyTo
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// ReplyHTML sends text rendered in HTML parse mode.
func (c *Conversation) ReplyHTML(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ReplyToMessageID = c.replyTo
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// Progress posts a status message. The returned func deletes it.
func (c *Conversation) Progress(_ context.Context, text string) (func(), error) {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ReplyToMessageID = c.replyTo
	sent, err := c.api.Send(msg)
	if err != nil {
		return nil, fmt.Errorf("send progress: %w", err)
	}
	return func() {
		if _, err := c.api.Request(tgbotapi.NewDeleteMessage(c.chatID, sent.MessageID)); err != nil {
			c.logger.Debug("progress message not deleted", logging.Error(err))
		}
	}, nil
}
