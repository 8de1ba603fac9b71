package repository

import (
	"context"

	"github.com/aibekm/codeassist-bot/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, userID int64, description string, dueDate *string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	// SetStatus updates one of the user's tasks. Returns
	// domain.ErrTaskNotFound if the task does not exist or belongs to
	// someone else.
	SetStatus(ctx context.Context, taskID, userID int64, status domain.TaskStatus) error
	Delete(ctx context.Context, taskID, userID int64) error
}
