package pomodoro_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/pomodoro"
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

func (s *fakeSender) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func newTestManager(workDur, breakDur time.Duration) (*pomodoro.Manager, *scheduler.Scheduler, *fakeSender) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := scheduler.New(logger, time.Second)
	sender := &fakeSender{}
	return pomodoro.NewManager(sched, sender, logger, workDur, breakDur), sched, sender
}

func pomodoroJobs(sched *scheduler.Scheduler) []domain.Job {
	var jobs []domain.Job
	for _, j := range sched.Snapshot() {
		if j.Key.Category == domain.CategoryPomodoroWork || j.Key.Category == domain.CategoryPomodoroBreak {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

func TestStartSchedulesWorkJob(t *testing.T) {
	m, sched, _ := newTestManager(25*time.Minute, 5*time.Minute)
	const userID, chatID = int64(1), int64(10)
	before := time.Now().UTC()

	if err := m.Start(userID, chatID); err != nil {
		t.Fatalf("start: %v", err)
	}

	phase, ok := m.Phase(userID)
	if !ok || phase != domain.PhaseWorking {
		t.Fatalf("expected working phase, got %q ok=%v", phase, ok)
	}

	job, ok := sched.Find(domain.JobKey{Category: domain.CategoryPomodoroWork, Owner: userID})
	if !ok {
		t.Fatal("work job not registered")
	}
	if job.Target != chatID {
		t.Fatalf("work job target: %d", job.Target)
	}
	earliest := before.Add(25 * time.Minute)
	latest := time.Now().UTC().Add(25 * time.Minute)
	if job.RunAt.Before(earliest) || job.RunAt.After(latest) {
		t.Fatalf("work job due at %v, want within [%v, %v]", job.RunAt, earliest, latest)
	}
}

func TestDoubleStartRejected(t *testing.T) {
	m, sched, _ := newTestManager(25*time.Minute, 5*time.Minute)

	if err := m.Start(1, 10); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Start(1, 10); !errors.Is(err, domain.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
	if got := len(pomodoroJobs(sched)); got != 1 {
		t.Fatalf("double start left %d jobs", got)
	}
}

func TestStopWithoutSession(t *testing.T) {
	m, _, _ := newTestManager(25*time.Minute, 5*time.Minute)
	if err := m.Stop(1); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestWorkEndTransitionsToBreak(t *testing.T) {
	m, sched, sender := newTestManager(25*time.Minute, 5*time.Minute)
	const userID, chatID = int64(1), int64(10)

	if err := m.Start(userID, chatID); err != nil {
		t.Fatalf("start: %v", err)
	}

	before := time.Now().UTC()
	if fired := sched.Tick(context.Background(), before.Add(time.Hour)); fired != 1 {
		t.Fatalf("expected work job to fire, got %d", fired)
	}

	msgs := sender.messages()
	if len(msgs) != 1 || msgs[0] != "Work session complete! Time for a 5-minute break." {
		t.Fatalf("unexpected work-end messages: %v", msgs)
	}

	phase, ok := m.Phase(userID)
	if !ok || phase != domain.PhaseOnBreak {
		t.Fatalf("expected break phase, got %q ok=%v", phase, ok)
	}

	if _, ok := sched.Find(domain.JobKey{Category: domain.CategoryPomodoroWork, Owner: userID}); ok {
		t.Fatal("work job should be consumed")
	}
	job, ok := sched.Find(domain.JobKey{Category: domain.CategoryPomodoroBreak, Owner: userID})
	if !ok {
		t.Fatal("break job not registered")
	}
	earliest := before.Add(5 * time.Minute)
	latest := time.Now().UTC().Add(5 * time.Minute)
	if job.RunAt.Before(earliest) || job.RunAt.After(latest) {
		t.Fatalf("break job due at %v, want within [%v, %v]", job.RunAt, earliest, latest)
	}
}

func TestFullCycleCompletes(t *testing.T) {
	m, sched, sender := newTestManager(25*time.Minute, 5*time.Minute)
	const userID, chatID = int64(1), int64(10)

	if err := m.Start(userID, chatID); err != nil {
		t.Fatalf("start: %v", err)
	}

	now := time.Now().UTC()
	sched.Tick(context.Background(), now.Add(time.Hour))   // work ends
	sched.Tick(context.Background(), now.Add(2*time.Hour)) // break ends

	msgs := sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", msgs)
	}
	if msgs[1] != "Break time over! Pomodoro session complete." {
		t.Fatalf("unexpected completion message: %q", msgs[1])
	}
	if _, ok := m.Phase(userID); ok {
		t.Fatal("session should be gone after a full cycle")
	}
	if got := len(pomodoroJobs(sched)); got != 0 {
		t.Fatalf("completed cycle left %d jobs behind", got)
	}
}

func TestStopCancelsOutstandingJobs(t *testing.T) {
	m, sched, _ := newTestManager(25*time.Minute, 5*time.Minute)
	const userID = int64(1)

	if err := m.Start(userID, 10); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick(context.Background(), time.Now().UTC().Add(time.Hour)) // now on break

	if err := m.Stop(userID); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if _, ok := m.Phase(userID); ok {
		t.Fatal("session should be gone after stop")
	}
	if got := len(pomodoroJobs(sched)); got != 0 {
		t.Fatalf("stop left %d jobs behind", got)
	}

	// The cancelled break must never deliver.
	if fired := sched.Tick(context.Background(), time.Now().UTC().Add(2*time.Hour)); fired != 0 {
		t.Fatalf("cancelled break job fired: %d", fired)
	}
}

// gateSender blocks the first Send until released, so a test can act
// while a dispatch is suspended mid-delivery.
type gateSender struct {
	fakeSender
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gateSender) Send(chatID int64, text string) error {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.fakeSender.Send(chatID, text)
}

func TestStopDuringWorkEndDispatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := scheduler.New(logger, time.Second)
	sender := &gateSender{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := pomodoro.NewManager(sched, sender, logger, 25*time.Minute, 5*time.Minute)
	const userID = int64(1)

	if err := m.Start(userID, 10); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sched.Tick(context.Background(), time.Now().UTC().Add(time.Hour))
	}()

	<-sender.entered
	// Dispatch is suspended inside Send; the session still exists, so
	// Stop succeeds and must win over the in-flight transition.
	if err := m.Stop(userID); err != nil {
		t.Fatalf("stop during dispatch: %v", err)
	}
	close(sender.release)
	<-done

	if _, ok := m.Phase(userID); ok {
		t.Fatal("stopped session resurrected by in-flight dispatch")
	}
	if got := len(pomodoroJobs(sched)); got != 0 {
		t.Fatalf("in-flight dispatch scheduled a dangling break job: %d jobs", got)
	}

	// Only the work-end message was already committed to delivery.
	msgs := sender.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Work session complete") {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}
