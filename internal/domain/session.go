package domain

import "errors"

var (
	ErrSessionExists = errors.New("pomodoro session already running")
	ErrNoSession     = errors.New("no active pomodoro session")
)

type Phase string

const (
	PhaseWorking Phase = "working"
	PhaseOnBreak Phase = "on_break"
)

// Session tracks one user's in-progress pomodoro cycle. Jobs holds the
// keys of the 1-2 scheduler jobs currently backing the session, so that
// Stop can cancel everything still outstanding.
type Session struct {
	UserID int64
	ChatID int64
	Phase  Phase
	Jobs   []JobKey
}
