package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WeatherPrefRepository struct {
	pool *pgxpool.Pool
}

func NewWeatherPrefRepository(pool *pgxpool.Pool) *WeatherPrefRepository {
	return &WeatherPrefRepository{pool: pool}
}

func (r *WeatherPrefRepository) Save(ctx context.Context, userID int64, location, at string) error {
	query := `
		INSERT INTO weather_preferences (user_id, location, at_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET location = $2, at_time = $3`

	if _, err := r.pool.Exec(ctx, query, userID, location, at); err != nil {
		return fmt.Errorf("save weather preference: %w", err)
	}
	return nil
}

func (r *WeatherPrefRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM weather_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete weather preference: %w", err)
	}
	return nil
}
