package repository

import (
	"context"

	"github.com/aibekm/codeassist-bot/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, userID int64, name, description string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Project, error)
	// Delete removes the user's project by name. Returns
	// domain.ErrProjectNotFound if no such project exists.
	Delete(ctx context.Context, userID int64, name string) error
}
