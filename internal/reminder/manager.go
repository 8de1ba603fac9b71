package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
)

const messageText = "Don't forget to code today! What project are you working on?"

// Sender delivers a plain text message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Manager owns the daily coding reminders. A chat has at most one
// active reminder; the invariant is enforced by the scheduler's
// same-key replace, not by an explicit lookup.
type Manager struct {
	sched  *scheduler.Scheduler
	sender Sender
	logger *slog.Logger
}

func NewManager(sched *scheduler.Scheduler, sender Sender, logger *slog.Logger) *Manager {
	return &Manager{
		sched:  sched,
		sender: sender,
		logger: logger.With("component", "reminder"),
	}
}

func key(chatID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryReminder, Owner: chatID}
}

// Set registers (or replaces) the chat's daily reminder at the given
// HH:MM UTC literal. A malformed time returns ErrInvalidTimeOfDay and
// registers nothing.
func (m *Manager) Set(chatID int64, at string) (domain.TimeOfDay, error) {
	tod, err := domain.ParseTimeOfDay(at)
	if err != nil {
		return domain.TimeOfDay{}, err
	}
	if err := m.sched.ScheduleDaily(key(chatID), tod, chatID, domain.Payload{}, m.dispatch); err != nil {
		return domain.TimeOfDay{}, fmt.Errorf("schedule reminder: %w", err)
	}
	m.logger.Info("reminder set", "chat_id", chatID, "time", tod.String())
	return tod, nil
}

// Stop cancels the chat's reminder. It reports whether one was active;
// stopping a chat with no reminder is a normal outcome, not an error.
func (m *Manager) Stop(chatID int64) bool {
	if _, ok := m.sched.Find(key(chatID)); !ok {
		return false
	}
	m.sched.Cancel(key(chatID))
	m.logger.Info("reminder stopped", "chat_id", chatID)
	return true
}

// dispatch is the scheduler-invoked callback. A delivery failure is
// logged and swallowed so the daily job stays registered.
func (m *Manager) dispatch(_ context.Context, target int64, _ domain.Payload) error {
	if err := m.sender.Send(target, messageText); err != nil {
		m.logger.Error("reminder send failed", "chat_id", target, "error", err)
	}
	return nil
}
