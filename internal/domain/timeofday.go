package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM (24-hour)")

// TimeOfDay is a wall-clock time in the reference timezone (UTC). All
// daily scheduling is normalized to it; callers convert from the user's
// local time before it reaches the core.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict 24-hour HH:MM literal. Anything else,
// including out-of-range components like "25:99", is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CronExpr renders the time of day as a standard cron expression pinned
// to UTC, suitable for robfig/cron's ParseStandard.
func (t TimeOfDay) CronExpr() string {
	return fmt.Sprintf("CRON_TZ=UTC %d %d * * *", t.Minute, t.Hour)
}
