package repository

import "context"

// WeatherPrefRepository stores the user's last weather subscription.
// This is user data, not job state: the scheduler is memory-only and a
// restart drops the job regardless of what is stored here.
type WeatherPrefRepository interface {
	Save(ctx context.Context, userID int64, location, at string) error
	Delete(ctx context.Context, userID int64) error
}
