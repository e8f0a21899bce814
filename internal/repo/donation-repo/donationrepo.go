package donationrepo

import (
	"context"

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

func (r *Repository) Create(ctx context.Context, d *domain.Donation) (int, error) {
	query := `
		INSERT INTO donations (user_id, report_id, species_name, amount_cents, currency, provider, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, d.UserID, d.ReportID, d.SpeciesName, d.AmountCents, d.Currency, d.Provider, d.Status).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		zap.L().Error("can't save donation", zap.Int("userID", d.UserID), zap.Error(err))
		return 0, err
	}
	return d.ID, nil
}
