package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/famledger/famledger/internal/models"
)

// TelegramNotifier posts the due-soon digest to a single chat, typically the
// family group.
type TelegramNotifier struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	currency string
}

func NewTelegramNotifier(token string, chatID int64, currency string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID, currency: currency}, nil
}

func (n *TelegramNotifier) Name() string { return "telegram" }

func (n *TelegramNotifier) Notify(ctx context.Context, reminders []*models.Reminder) error {
	msg := tgbotapi.NewMessage(n.chatID, buildTelegramDigest(reminders, n.currency))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram digest: %w", err)
	}
	return nil
}

func buildTelegramDigest(reminders []*models.Reminder, currency string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Upcoming bill reminders (%d due soon)\n\n", len(reminders)))
	for _, r := range reminders {
		sb.WriteString(fmt.Sprintf("%s - due %s - %s%s\n",
			r.Description, r.DueDate.Format(time.DateOnly), currency, r.Amount.StringFixed(2)))
	}
	sb.WriteString("\nIf a bill is already settled, mark it as paid on the site.")
	return sb.String()
}
