package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

// Repository is the append-only points ledger. There is no update or delete
// path; the table trigger rejects both.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Append(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	query := `
		INSERT INTO points_ledger (user_id, delta, reason, ref_type, ref_id, note)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, 0), NULLIF($6, ''))
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Delta, string(entry.Reason), entry.RefType, entry.RefID, entry.Note).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("can't append ledger entry",
			zap.Int("userID", entry.UserID),
			zap.String("reason", string(entry.Reason)),
			zap.Error(err),
		)
		return 0, err
	}
	return entry.ID, nil
}

func (r *Repository) Balance(ctx context.Context, userID int) (int64, error) {
	query := `SELECT COALESCE(SUM(delta), 0) FROM points_ledger WHERE user_id = $1`
	var balance int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		zap.L().Error("can't compute balance", zap.Int("userID", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) History(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, delta, reason, COALESCE(ref_type, ''), COALESCE(ref_id, 0), COALESCE(note, ''), created_at
		FROM points_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("can't get ledger history", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var (
			e      domain.LedgerEntry
			reason string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &reason, &e.RefType, &e.RefID, &e.Note, &e.CreatedAt); err != nil {
			zap.L().Error("can't scan ledger row", zap.Error(err))
			return nil, err
		}
		if e.Reason, err = domain.ParseLedgerReason(reason); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LockAccount takes a row lock on the user so that balance-dependent spends
// of the same user are serialised. It reports false for an unknown user.
func (r *Repository) LockAccount(ctx context.Context, userID int) (bool, error) {
	var id int
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't lock account", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	return true, nil
}
