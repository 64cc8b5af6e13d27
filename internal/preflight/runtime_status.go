package preflight

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CheckTelegram verifies the bot token by calling getMe.
func CheckTelegram(ctx context.Context, endpoint, token string) Result {
	const name = "Telegram"

	if strings.TrimSpace(token) == "" {
		return Result{Name: name, Detail: "missing bot token"}
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := &http.Client{Transport: contextTransport{ctx: checkCtx}}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%s)", summarizeNetworkError(err))}
	}
	return Result{Name: name, Passed: true, Detail: "authorized as @" + api.Self.UserName}
}

// contextTransport binds requests issued by tgbotapi, which does not take a
// context, to ctx.
type contextTransport struct {
	ctx context.Context
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return http.DefaultTransport.RoundTrip(req.WithContext(t.ctx))
}
