// Package notify delivers study reminders to learners.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vytor/studyflash/internal/logger"
)

// Notifier sends a text message to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	bot sender
}

func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	logger.Default().WithPrefix("notify").Info("authorized on telegram account %s", bot.Self.UserName)
	return &Telegram{bot: bot}, nil
}

func (t *Telegram) Notify(ctx context.Context, chatID int64, text string) error {
	log := logger.FromContext(ctx).WithPrefix("notify")
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Error("failed to send telegram message: chat_id=%d, err=%v", chatID, err)
		return err
	}
	log.Debug("telegram message sent: chat_id=%d", chatID)
	return nil
}

// Log writes reminders to the log instead of delivering them.
type Log struct{}

func (Log) Notify(ctx context.Context, chatID int64, text string) error {
	logger.FromContext(ctx).WithPrefix("notify").WithField("chat_id", chatID).Info("reminder: %s", text)
	return nil
}

// ReminderText is the message sent when a learner has cards waiting.
func ReminderText(due int) string {
	if due == 1 {
		return "You have 1 flashcard due for review. A quick session keeps your streak alive!"
	}
	return fmt.Sprintf("You have %d flashcards due for review. A quick session keeps your streak alive!", due)
}
