package domain

import (
	"fmt"
	"time"
)

// Category partitions the scheduler's key space so that unrelated job
// families can never collide on a formatted name.
type Category string

const (
	CategoryReminder      Category = "reminder"
	CategoryWeather       Category = "weather"
	CategoryPomodoroWork  Category = "pomodoro_work"
	CategoryPomodoroBreak Category = "pomodoro_break"
)

// JobKey uniquely identifies one pending job. Owner is the chat or user
// the job belongs to, depending on the category.
type JobKey struct {
	Category Category
	Owner    int64
}

func (k JobKey) String() string {
	return fmt.Sprintf("%s:%d", k.Category, k.Owner)
}

type JobKind string

const (
	KindOnce  JobKind = "once"
	KindDaily JobKind = "daily"
)

// Payload carries category-specific job data to the dispatch callback.
type Payload map[string]string

// Job is one pending timer tracked by the scheduler. For KindOnce jobs
// RunAt is the absolute due instant; for KindDaily jobs it is the next
// occurrence of the job's time of day in UTC.
type Job struct {
	Key     JobKey
	Kind    JobKind
	RunAt   time.Time
	Target  int64 // chat to deliver to
	Payload Payload
}
