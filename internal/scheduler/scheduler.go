package scheduler

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/aibekm/codeassist-bot/internal/domain"
	"github.com/aibekm/codeassist-bot/internal/metrics"
	"github.com/aibekm/codeassist-bot/internal/requestid"
)

// Callback is invoked when a job comes due. A non-nil error is logged
// and counted but never stops the tick loop; a failing daily job stays
// registered for its next occurrence, a failing one-shot is consumed.
type Callback func(ctx context.Context, target int64, payload domain.Payload) error

type entry struct {
	job      *domain.Job
	callback Callback
	schedule cron.Schedule // non-nil for daily jobs
	runAt    time.Time
	index    int
	removed  bool
}

type jobHeap []*entry

func (h jobHeap) Len() int            { return len(h) }
func (h jobHeap) Less(i, j int) bool  { return h[i].runAt.Before(h[j].runAt) }
func (h jobHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *jobHeap) Push(x any)         { e := x.(*entry); e.index = len(*h); *h = append(*h, e) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler is an in-process, time-ordered job queue. It owns the set
// of pending jobs exclusively; managers interact with it only through
// registration and cancellation by typed key. Jobs do not survive a
// process restart.
type Scheduler struct {
	mu     sync.Mutex
	heap   jobHeap
	byKey  map[domain.JobKey]*entry
	logger *slog.Logger

	interval time.Duration
	clock    func() time.Time
}

func New(logger *slog.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		byKey:    make(map[domain.JobKey]*entry),
		logger:   logger.With("component", "scheduler"),
		interval: interval,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// ScheduleOnce registers a one-shot job due at runAt. A same-key job is
// replaced atomically. A runAt already in the past is not an error: the
// job fires on the next tick ("fire as soon as possible" policy).
func (s *Scheduler) ScheduleOnce(key domain.JobKey, runAt time.Time, target int64, payload domain.Payload, cb Callback) {
	job := &domain.Job{Key: key, Kind: domain.KindOnce, RunAt: runAt.UTC(), Target: target, Payload: payload}
	s.install(&entry{job: job, callback: cb, runAt: job.RunAt})
	s.logger.Info("job scheduled", "job", key.String(), "kind", domain.KindOnce, "run_at", job.RunAt)
}

// ScheduleDaily registers a recurring job firing once per day at tod in
// UTC. Replacing an existing same-key job cancels the old firing
// schedule in the same critical section as installing the new one, so
// there is no double-fire window.
func (s *Scheduler) ScheduleDaily(key domain.JobKey, tod domain.TimeOfDay, target int64, payload domain.Payload, cb Callback) error {
	sched, err := cron.ParseStandard(tod.CronExpr())
	if err != nil {
		// TimeOfDay is range-checked at parse time; this is unreachable
		// short of a bug in CronExpr.
		return err
	}
	next := sched.Next(s.clock())
	job := &domain.Job{Key: key, Kind: domain.KindDaily, RunAt: next, Target: target, Payload: payload}
	s.install(&entry{job: job, callback: cb, schedule: sched, runAt: next})
	s.logger.Info("job scheduled", "job", key.String(), "kind", domain.KindDaily, "time", tod.String(), "next", next)
	return nil
}

func (s *Scheduler) install(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byKey[e.job.Key]; ok {
		old.removed = true
	} else {
		metrics.JobsActive.WithLabelValues(string(e.job.Key.Category)).Inc()
	}
	s.byKey[e.job.Key] = e
	heap.Push(&s.heap, e)
}

// Cancel removes the job with the given key. Cancelling a key that is
// not registered is a no-op. A job that has already been selected to
// fire in an in-flight tick still completes its dispatch; cancellation
// only guarantees no further dispatches after it returns.
func (s *Scheduler) Cancel(key domain.JobKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byKey[key]
	if !ok {
		return
	}
	e.removed = true
	delete(s.byKey, key)
	metrics.JobsActive.WithLabelValues(string(key.Category)).Dec()
	s.logger.Info("job cancelled", "job", key.String())
}

// Find returns a copy of the pending job registered under key, if any.
// A copy, because the live job's RunAt is rewritten under the lock when
// a daily occurrence is re-queued.
func (s *Scheduler) Find(key domain.JobKey) (*domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	job := *e.job
	return &job, true
}

// Snapshot returns a copy of every pending job, ordered arbitrarily.
func (s *Scheduler) Snapshot() []domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]domain.Job, 0, len(s.byKey))
	for _, e := range s.byKey {
		jobs = append(jobs, *e.job)
	}
	return jobs
}

// Run drives the queue until ctx is cancelled, ticking at the
// configured interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shut down")
			return
		case <-ticker.C:
			s.Tick(ctx, s.clock())
		}
	}
}

// Tick fires every job due at or before now and returns how many were
// dispatched. Once a job is popped here it is committed to firing: a
// concurrent Cancel can no longer stop it. Daily jobs are re-queued for
// their next occurrence before their callback runs, so a replace or
// cancel issued during the dispatch applies to the re-queued entry.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) int {
	fired := 0
	for {
		s.mu.Lock()
		if len(s.heap) == 0 || s.heap[0].runAt.After(now) {
			s.mu.Unlock()
			return fired
		}
		e := heap.Pop(&s.heap).(*entry)
		if e.removed {
			s.mu.Unlock()
			continue
		}
		job := e.job
		if job.Kind == domain.KindDaily {
			next := e.schedule.Next(now)
			job.RunAt = next
			requeued := &entry{job: job, callback: e.callback, schedule: e.schedule, runAt: next}
			s.byKey[job.Key] = requeued
			heap.Push(&s.heap, requeued)
		} else {
			delete(s.byKey, job.Key)
			metrics.JobsActive.WithLabelValues(string(job.Key.Category)).Dec()
		}
		cb := e.callback
		s.mu.Unlock()

		s.dispatch(ctx, job, cb)
		fired++
	}
}

// dispatch invokes one callback outside the scheduler lock. Errors and
// panics are contained here; nothing a callback does may take down the
// tick loop.
func (s *Scheduler) dispatch(ctx context.Context, job *domain.Job, cb Callback) {
	runID := uuid.NewString()
	ctx = requestid.WithRequestID(ctx, runID)
	log := s.logger.With("job", job.Key.String(), "run_id", runID)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			metrics.JobsFiredTotal.WithLabelValues(string(job.Key.Category), "panic").Inc()
			log.Error("dispatch panicked", "panic", r)
		}
	}()

	log.Info("dispatching job", "target", job.Target)
	err := cb(ctx, job.Target, job.Payload)
	metrics.DispatchDuration.WithLabelValues(string(job.Key.Category)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.JobsFiredTotal.WithLabelValues(string(job.Key.Category), "error").Inc()
		log.Error("dispatch failed", "error", err)
		return
	}
	metrics.JobsFiredTotal.WithLabelValues(string(job.Key.Category), "ok").Inc()
}
