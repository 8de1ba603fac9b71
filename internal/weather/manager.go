package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/repository"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
)

var ErrBadArgs = errors.New("expected: LOCATION HH:MM")

const fetchFailedText = "Unable to fetch weather data. Please try again."

// Sender delivers a plain text message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Manager owns daily weather push subscriptions, one per user.
// Re-subscribing replaces the previous schedule; the stored preference
// is written through to Postgres as user data but the job itself lives
// only in the scheduler.
type Manager struct {
	sched  *scheduler.Scheduler
	client *Client
	sender Sender
	prefs  repository.WeatherPrefRepository
	logger *slog.Logger
}

func NewManager(sched *scheduler.Scheduler, client *Client, sender Sender, prefs repository.WeatherPrefRepository, logger *slog.Logger) *Manager {
	return &Manager{
		sched:  sched,
		client: client,
		sender: sender,
		prefs:  prefs,
		logger: logger.With("component", "weather"),
	}
}

func key(userID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryWeather, Owner: userID}
}

// Subscription describes what was registered, for the confirmation
// message.
type Subscription struct {
	Location string
	At       domain.TimeOfDay
}

// Set parses "LOCATION HH:MM" (the location may contain spaces; the
// last token is the time) and registers or replaces the user's daily
// weather push.
func (m *Manager) Set(ctx context.Context, userID, chatID int64, args string) (Subscription, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return Subscription{}, ErrBadArgs
	}
	location := strings.Join(fields[:len(fields)-1], " ")
	tod, err := domain.ParseTimeOfDay(fields[len(fields)-1])
	if err != nil {
		return Subscription{}, err
	}

	payload := domain.Payload{"location": location}
	if err := m.sched.ScheduleDaily(key(userID), tod, chatID, payload, m.dispatch); err != nil {
		return Subscription{}, fmt.Errorf("schedule weather updates: %w", err)
	}

	// Preference write-through is best effort: the subscription is live
	// either way, only the stored copy is stale on failure.
	if err := m.prefs.Save(ctx, userID, location, tod.String()); err != nil {
		m.logger.Error("save weather preference failed", "user_id", userID, "error", err)
	}

	m.logger.Info("weather updates set", "user_id", userID, "location", location, "time", tod.String())
	return Subscription{Location: location, At: tod}, nil
}

// Stop cancels the user's weather push and clears the stored
// preference. Reports whether a subscription was active.
func (m *Manager) Stop(ctx context.Context, userID int64) bool {
	if _, ok := m.sched.Find(key(userID)); !ok {
		return false
	}
	m.sched.Cancel(key(userID))
	if err := m.prefs.Delete(ctx, userID); err != nil {
		m.logger.Error("delete weather preference failed", "user_id", userID, "error", err)
	}
	m.logger.Info("weather updates stopped", "user_id", userID)
	return true
}

// Lookup performs a one-shot weather query for the /weather command.
func (m *Manager) Lookup(ctx context.Context, location string) (string, error) {
	report, err := m.client.Fetch(ctx, location)
	if err != nil {
		return "", err
	}
	return report.Format(location), nil
}

// dispatch fires at push time: look up, deliver. A failed lookup turns
// into a user-facing fallback message and never propagates, so the
// daily job keeps its schedule.
func (m *Manager) dispatch(ctx context.Context, target int64, payload domain.Payload) error {
	location := payload["location"]

	text := fetchFailedText
	report, err := m.client.Fetch(ctx, location)
	if err != nil {
		m.logger.Error("weather lookup failed", "chat_id", target, "location", location, "error", err)
	} else {
		text = report.Format(location)
	}

	if err := m.sender.Send(target, text); err != nil {
		m.logger.Error("weather send failed", "chat_id", target, "error", err)
	}
	return nil
}
