package telegram

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aibekm/codeassist-bot/internal/metrics"
)

// Sender wraps the bot API for outbound delivery. It satisfies the
// Sender interface of every manager, so scheduler callbacks deliver
// through the same path as direct replies.
type Sender struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewSender(api *tgbotapi.BotAPI, logger *slog.Logger) *Sender {
	return &Sender{api: api, logger: logger.With("component", "sender")}
}

// Send delivers a plain text message. Fire-and-forget: failures are
// counted and returned but never retried.
func (s *Sender) Send(chatID int64, text string) error {
	if _, err := s.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		metrics.SendFailuresTotal.Inc()
		return err
	}
	return nil
}

// SendWithMarkup delivers a message with an inline keyboard attached.
func (s *Sender) SendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := s.api.Send(msg); err != nil {
		metrics.SendFailuresTotal.Inc()
		return err
	}
	return nil
}

// AnswerCallback acknowledges an inline button press.
func (s *Sender) AnswerCallback(callbackID string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		s.logger.Warn("answer callback failed", "error", err)
	}
}
