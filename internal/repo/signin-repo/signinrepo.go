package signinrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Insert records the sign-in for day. The (user_id, date) unique key makes a
// second call for the same day a no-op that reports inserted=false.
func (r *Repository) Insert(ctx context.Context, userID int, day time.Time, points int64) (int, bool, error) {
	query := `
		INSERT INTO daily_signins (user_id, date, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(ctx, query, userID, day, points).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		zap.L().Error("can't record sign-in", zap.Int("userID", userID), zap.Error(err))
		return 0, false, err
	}
	return id, true, nil
}

func (r *Repository) Exists(ctx context.Context, userID int, day time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM daily_signins WHERE user_id = $1 AND date = $2)`, userID, day).
		Scan(&exists)
	if err != nil {
		zap.L().Error("can't check sign-in", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	return exists, nil
}
