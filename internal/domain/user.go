package domain

import "time"

// User is a chat user, keyed by their Telegram ID.
type User struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
}
