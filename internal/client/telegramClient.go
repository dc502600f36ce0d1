package client

import (
	"context"
	"errors"
	"fmt"

	"webshop-backend/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNotifierNotConfigured = errors.New("telegram bot not configured")

// Notifier delivers operator alerts. Delivery is best-effort everywhere it
// is used.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type telegramNotifierImpl struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(cfg *config.Telegram) (Notifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, ErrNotifierNotConfigured
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &telegramNotifierImpl{
		bot:    bot,
		chatID: cfg.ChatID,
	}, nil
}

func (n *telegramNotifierImpl) Notify(_ context.Context, text string) error {
	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	return err
}

// NoopNotifier stands in when no bot is configured so callers never have
// to nil-check.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string) error {
	return ErrNotifierNotConfigured
}
