package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aibekm/codeassist-bot/internal/domain"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, userID int64, name, description string) (*domain.Project, error) {
	query := `
		INSERT INTO projects (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, description`

	var p domain.Project
	err := r.pool.QueryRow(ctx, query, userID, name, description).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Description)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	query := `SELECT id, user_id, name, description FROM projects WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Project, error) {
		var p domain.Project
		err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, userID int64, name string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
