// Package notify pushes operational events to a Telegram admin channel.
// All methods are no-ops when the bot token is not configured.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankora/bankora-api/internal/config"
	"github.com/go-telegram/bot"
)

type OpsNotifier struct {
	bot    *bot.Bot
	chatID int64
}

// New creates the notifier. A missing token or an unreachable Telegram API
// disables notifications rather than failing startup.
func New(cfg *config.Config) *OpsNotifier {
	if cfg.OpsBotToken == "" || cfg.OpsChatID == 0 {
		return &OpsNotifier{}
	}

	b, err := bot.New(cfg.OpsBotToken)
	if err != nil {
		slog.Error("failed to create ops bot, notifications disabled", "error", err)
		return &OpsNotifier{}
	}
	return &OpsNotifier{bot: b, chatID: cfg.OpsChatID}
}

func (n *OpsNotifier) send(message string) {
	if n.bot == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send ops notification", "error", err)
	}
}

func (n *OpsNotifier) Registration(email, displayName string) {
	n.send(fmt.Sprintf("👤 *New Registration*\n\n*Email:* `%s`\n*Name:* %s", email, displayName))
}

func (n *OpsNotifier) ProviderFailure(modelType string, err error) {
	n.send(fmt.Sprintf("❌ *Provider Failure*\n\n*Model:* %s\n*Error:* `%s`\n*Time:* %s",
		modelType, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}
