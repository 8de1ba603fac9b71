package reminder_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/reminder"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSender) Send(_ int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

func newTestManager() (*reminder.Manager, *scheduler.Scheduler, *fakeSender) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := scheduler.New(logger, time.Second)
	sender := &fakeSender{}
	return reminder.NewManager(sched, sender, logger), sched, sender
}

func reminderKey(chatID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryReminder, Owner: chatID}
}

func TestSetReplacesExistingReminder(t *testing.T) {
	m, sched, _ := newTestManager()
	const chatID = int64(100)

	if _, err := m.Set(chatID, "08:00"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if _, err := m.Set(chatID, "21:15"); err != nil {
		t.Fatalf("second set: %v", err)
	}

	var reminders int
	for _, j := range sched.Snapshot() {
		if j.Key.Category == domain.CategoryReminder {
			reminders++
		}
	}
	if reminders != 1 {
		t.Fatalf("expected exactly one reminder job, got %d", reminders)
	}

	job, ok := sched.Find(reminderKey(chatID))
	if !ok {
		t.Fatal("reminder job missing")
	}
	if job.RunAt.Hour() != 21 || job.RunAt.Minute() != 15 {
		t.Fatalf("expected 21:15 UTC schedule, got %v", job.RunAt)
	}
}

func TestMalformedTimeRegistersNothing(t *testing.T) {
	m, sched, _ := newTestManager()

	_, err := m.Set(100, "25:99")
	if !errors.Is(err, domain.ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
	if len(sched.Snapshot()) != 0 {
		t.Fatal("malformed time must not register a job")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m, _, _ := newTestManager()
	const chatID = int64(100)

	if _, err := m.Set(chatID, "08:00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !m.Stop(chatID) {
		t.Fatal("first stop should report an active reminder")
	}
	if m.Stop(chatID) {
		t.Fatal("second stop should report no active reminder")
	}
}

func TestDispatchSendsMotivationalText(t *testing.T) {
	m, sched, sender := newTestManager()
	const chatID = int64(100)

	if _, err := m.Set(chatID, "08:00"); err != nil {
		t.Fatalf("set: %v", err)
	}

	sched.Tick(context.Background(), time.Now().UTC().Add(25*time.Hour))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	if sender.sent[0] != "Don't forget to code today! What project are you working on?" {
		t.Fatalf("unexpected reminder text: %q", sender.sent[0])
	}

	if _, ok := sched.Find(reminderKey(chatID)); !ok {
		t.Fatal("daily reminder must survive a firing")
	}
}
