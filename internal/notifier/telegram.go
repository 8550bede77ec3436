package notifier

import (
	"fmt"
	"html"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/askohli/boardscout/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends posting alerts to a Telegram chat through the bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier authenticates the bot token and returns a notifier
// targeting the given chat.
func NewTelegramNotifier(token string, chatID int64, logger *slog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Notify sends each record as a separate HTML-formatted message.
// Returns an error only if ALL messages fail. Individual failures are logged.
func (t *TelegramNotifier) Notify(records []model.JobRecord) error {
	if len(records) == 0 {
		return nil
	}

	failures := 0
	for _, rec := range records {
		msg := tgbotapi.NewMessage(t.chatID, formatTelegramMessage(rec))
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := t.bot.Send(msg); err != nil {
			t.logger.Error("telegram notification failed", "company", rec.Company, "link", rec.Link, "error", err)
			failures++
		}
	}

	if failures == len(records) {
		return fmt.Errorf("all %d telegram notifications failed", failures)
	}
	t.logger.Info("telegram notifications complete", "sent", len(records)-failures, "failed", failures)
	return nil
}

func formatTelegramMessage(rec model.JobRecord) string {
	headline := capitalize(rec.Company)
	if rec.Title != model.NoData {
		headline = rec.Title
	}
	return fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"🧭 %s\n"+
			"📍 %s\n"+
			"🔗 <a href=\"%s\">View Posting</a>",
		html.EscapeString(headline),
		html.EscapeString(capitalize(rec.Company)),
		html.EscapeString(rec.RoleMatched),
		html.EscapeString(rec.LocationSearched),
		rec.Link,
	)
}
