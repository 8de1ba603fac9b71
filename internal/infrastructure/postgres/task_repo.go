package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aibekm/codeassist-bot/internal/domain"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, userID int64, description string, dueDate *string) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, description, due_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, description, status, due_date`

	var t domain.Task
	err := r.pool.QueryRow(ctx, query, userID, description, dueDate, domain.TaskPending).
		Scan(&t.ID, &t.UserID, &t.Description, &t.Status, &t.DueDate)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	query := `SELECT id, user_id, description, status, due_date FROM tasks WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Task, error) {
		var t domain.Task
		err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.Status, &t.DueDate)
		return &t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, taskID, userID int64, status domain.TaskStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET status = $1 WHERE id = $2 AND user_id = $3`, status, taskID, userID)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
