package repository

import (
	"context"

	"github.com/aibekm/codeassist-bot/internal/domain"
)

// Handlers depend on interfaces, not concrete implementations, so the
// Postgres store can be swapped for a mock in tests.
type UserRepository interface {
	// GetOrCreate upserts the user on first contact and returns the row.
	GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
}
