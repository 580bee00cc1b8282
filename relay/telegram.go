// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package relay

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramRelay posts lifecycle events to a Telegram group chat. Groups
// that coordinate dinner in a Telegram chat point the bot at that chat;
// everyone sees invitations and outcomes without opening the app.
type TelegramRelay struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramRelay connects the bot. token comes from @BotFather, chatID
// is the target group chat.
func NewTelegramRelay(token string, chatID int64) (*TelegramRelay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	slog.Info("telegram relay connected", "bot", bot.Self.UserName, "chat_id", chatID)
	return &TelegramRelay{bot: bot, chatID: chatID}, nil
}

// Publish sends the event text to the chat. Delivery failures are logged
// and dropped; notifications are best-effort.
func (r *TelegramRelay) Publish(ctx context.Context, ev Event) {
	text := FormatMessage(ev)
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(r.chatID, text)
	if _, err := r.bot.Send(msg); err != nil {
		slog.Warn("telegram send failed", "error", err, "event", ev.Name)
	}
}
