package questrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
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

// Upsert creates the day's log row for the quest or raises its progress.
// Progress never goes down and completed never flips back.
func (r *Repository) Upsert(ctx context.Context, userID int, code domain.QuestCode, day time.Time, progress int, completed bool) error {
	query := `
		INSERT INTO quest_logs (user_id, code, date, progress, completed)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, code, date) DO UPDATE
		SET progress = GREATEST(quest_logs.progress, EXCLUDED.progress),
		    completed = quest_logs.completed OR EXCLUDED.completed
	`
	if _, err := r.db.Exec(ctx, query, userID, string(code), day, progress, completed); err != nil {
		zap.L().Error("can't upsert quest log", zap.Int("userID", userID), zap.String("code", string(code)), zap.Error(err))
		return err
	}
	return nil
}

// MarkRewarded flips rewarded from false to true for a completed quest. Only
// one caller per (user, code, day) ever gets ok=true.
func (r *Repository) MarkRewarded(ctx context.Context, userID int, code domain.QuestCode, day time.Time) (int, bool, error) {
	query := `
		UPDATE quest_logs
		SET rewarded = TRUE
		WHERE user_id = $1 AND code = $2 AND date = $3 AND completed AND NOT rewarded
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(ctx, query, userID, string(code), day).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		zap.L().Error("can't mark quest rewarded", zap.Int("userID", userID), zap.String("code", string(code)), zap.Error(err))
		return 0, false, err
	}
	return id, true, nil
}

func (r *Repository) ListForDay(ctx context.Context, userID int, day time.Time) ([]domain.QuestLog, error) {
	query := `
		SELECT id, user_id, code, date, progress, completed, rewarded, created_at
		FROM quest_logs
		WHERE user_id = $1 AND date = $2
	`
	rows, err := r.db.Query(ctx, query, userID, day)
	if err != nil {
		zap.L().Error("can't list quest logs", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []domain.QuestLog
	for rows.Next() {
		var (
			l    domain.QuestLog
			code string
		)
		if err = rows.Scan(&l.ID, &l.UserID, &code, &l.Date, &l.Progress, &l.Completed, &l.Rewarded, &l.CreatedAt); err != nil {
			zap.L().Error("can't scan quest log", zap.Error(err))
			return nil, err
		}
		if l.Code, err = domain.ParseQuestCode(code); err != nil {
			return nil, fmt.Errorf("%w: quest code %q", domain.ErrCorruptValue, code)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
