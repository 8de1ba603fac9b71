package pomodoro

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/scheduler"
)

const (
	DefaultWorkDuration  = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Sender delivers a plain text message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Manager runs the per-user pomodoro state machine: Idle -> Working ->
// OnBreak -> Idle, built from two chained one-shot jobs. The session
// table and the scheduler's job set are kept consistent: stopping a
// session cancels its outstanding jobs, and a cycle completing removes
// the session.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session

	sched    *scheduler.Scheduler
	sender   Sender
	logger   *slog.Logger
	workDur  time.Duration
	breakDur time.Duration
	clock    func() time.Time
}

func NewManager(sched *scheduler.Scheduler, sender Sender, logger *slog.Logger, workDur, breakDur time.Duration) *Manager {
	return &Manager{
		sessions: make(map[int64]*domain.Session),
		sched:    sched,
		sender:   sender,
		logger:   logger.With("component", "pomodoro"),
		workDur:  workDur,
		breakDur: breakDur,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func workKey(userID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryPomodoroWork, Owner: userID}
}

func breakKey(userID int64) domain.JobKey {
	return domain.JobKey{Category: domain.CategoryPomodoroBreak, Owner: userID}
}

// Start begins a new session for the user. Returns ErrSessionExists if
// one is already running.
func (m *Manager) Start(userID, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		return domain.ErrSessionExists
	}

	payload := domain.Payload{
		"user_id":       strconv.FormatInt(userID, 10),
		"break_seconds": strconv.Itoa(int(m.breakDur.Seconds())),
	}
	m.sched.ScheduleOnce(workKey(userID), m.clock().Add(m.workDur), chatID, payload, m.onWorkEnd)

	m.sessions[userID] = &domain.Session{
		UserID: userID,
		ChatID: chatID,
		Phase:  domain.PhaseWorking,
		Jobs:   []domain.JobKey{workKey(userID)},
	}
	m.logger.Info("pomodoro started", "user_id", userID, "work_duration", m.workDur)
	return nil
}

// Stop cancels the user's session and every job still backing it.
// Returns ErrNoSession if nothing is running. A work or break job that
// has already been selected to fire may still deliver its message; it
// will find the session gone and go no further.
func (m *Manager) Stop(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		return domain.ErrNoSession
	}
	for _, k := range sess.Jobs {
		m.sched.Cancel(k)
	}
	delete(m.sessions, userID)
	m.logger.Info("pomodoro stopped", "user_id", userID)
	return nil
}

// Phase reports the user's current phase, if a session is running.
func (m *Manager) Phase(userID int64) (domain.Phase, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return "", false
	}
	return sess.Phase, true
}

// onWorkEnd fires when the work timer elapses. The session check
// happens after the send, which may have suspended this goroutine: if
// the user stopped the session in the meantime, no break job may be
// scheduled, or it would dangle with no session to cancel it.
func (m *Manager) onWorkEnd(_ context.Context, target int64, payload domain.Payload) error {
	userID, err := strconv.ParseInt(payload["user_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("bad work payload: %w", err)
	}
	breakDur := m.breakDur
	if secs, err := strconv.Atoi(payload["break_seconds"]); err == nil {
		breakDur = time.Duration(secs) * time.Second
	}

	text := fmt.Sprintf("Work session complete! Time for a %d-minute break.", int(breakDur.Minutes()))
	if err := m.sender.Send(target, text); err != nil {
		m.logger.Error("work-end send failed", "chat_id", target, "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		m.logger.Info("session stopped before work-end dispatch finished", "user_id", userID)
		return nil
	}

	m.sched.ScheduleOnce(breakKey(userID), m.clock().Add(breakDur), target,
		domain.Payload{"user_id": payload["user_id"]}, m.onBreakEnd)
	sess.Phase = domain.PhaseOnBreak
	sess.Jobs = append(sess.Jobs, breakKey(userID))
	m.logger.Info("break scheduled", "user_id", userID, "break_duration", breakDur)
	return nil
}

// onBreakEnd fires when the break timer elapses and completes the
// cycle. The delete is idempotent; Stop may have raced it.
func (m *Manager) onBreakEnd(_ context.Context, target int64, payload domain.Payload) error {
	userID, err := strconv.ParseInt(payload["user_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("bad break payload: %w", err)
	}

	if err := m.sender.Send(target, "Break time over! Pomodoro session complete."); err != nil {
		m.logger.Error("break-end send failed", "chat_id", target, "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	m.logger.Info("pomodoro completed", "user_id", userID)
	return nil
}
