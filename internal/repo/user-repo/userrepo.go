package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, display_name, is_admin, COALESCE(bio, ''), COALESCE(city, ''), public_profile, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsAdmin, &u.Bio, &u.City, &u.PublicProfile, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Int("userID", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.DisplayName, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET display_name = $1, bio = NULLIF($2, ''), city = NULLIF($3, ''), public_profile = $4
		WHERE id = $5
	`
	tag, err := repo.db.Exec(ctx, query, user.DisplayName, user.Bio, user.City, user.PublicProfile, user.ID)
	if err != nil {
		zap.L().Error("can't update profile", zap.Int("userID", user.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats counts the user's reports and donations. Points come from the ledger.
func (repo *Repository) Stats(ctx context.Context, userID int) (*domain.ProfileStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM species_reports WHERE reporter_id = $1),
			(SELECT COUNT(*) FROM species_reports WHERE reporter_id = $1 AND status = 'approved'),
			(SELECT COALESCE(SUM(amount_cents), 0) FROM donations WHERE user_id = $1)
	`
	var stats domain.ProfileStats
	err := repo.db.QueryRow(ctx, query, userID).Scan(&stats.TotalReports, &stats.ApprovedReports, &stats.DonatedCents)
	if err != nil {
		zap.L().Error("can't load profile stats", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
