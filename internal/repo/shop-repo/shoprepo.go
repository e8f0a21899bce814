package shoprepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const itemColumns = `id, kind, title, description, points_cost, stock, COALESCE(media_url, ''), status, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanItem(row pgx.Row) (*domain.ShopItem, error) {
	var (
		item         domain.ShopItem
		kind, status string
	)
	err := row.Scan(&item.ID, &kind, &item.Title, &item.Description, &item.PointsCost, &item.Stock, &item.MediaURL, &status, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if item.Kind, err = domain.ParseItemKind(kind); err != nil {
		return nil, err
	}
	if item.Status, err = domain.ParseItemStatus(status); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE status = 'active' ORDER BY points_cost, id`)
	if err != nil {
		zap.L().Error("can't list shop items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.ShopItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			zap.L().Error("can't scan shop item", zap.Error(err))
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// FindItemForUpdate locks the item row for the rest of the transaction.
func (r *Repository) FindItemForUpdate(ctx context.Context, id int) (*domain.ShopItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find shop item", zap.Int("itemID", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// DecrementStock takes one unit from a bounded item. The stock > 0 guard
// keeps the count from going negative even without the row lock.
func (r *Repository) DecrementStock(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `UPDATE shop_items SET stock = stock - 1 WHERE id = $1 AND stock IS NOT NULL AND stock > 0`, id)
	if err != nil {
		zap.L().Error("can't decrement stock", zap.Int("itemID", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOutOfStock
	}
	return nil
}

func (r *Repository) CreateRedemption(ctx context.Context, red *domain.Redemption) (int, error) {
	query := `
		INSERT INTO redemptions (user_id, item_id, points_cost, status, shipping_text)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, red.UserID, red.ItemID, red.PointsCost, string(red.Status), red.ShippingText).
		Scan(&red.ID, &red.CreatedAt)
	if err != nil {
		zap.L().Error("can't save redemption", zap.Int("userID", red.UserID), zap.Int("itemID", red.ItemID), zap.Error(err))
		return 0, err
	}
	return red.ID, nil
}

func (r *Repository) ListRedemptions(ctx context.Context, userID int) ([]domain.Redemption, error) {
	query := `
		SELECT r.id, r.user_id, r.item_id, i.title, r.points_cost, r.status, COALESCE(r.shipping_text, ''), r.created_at
		FROM redemptions r
		JOIN shop_items i ON i.id = r.item_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list redemptions", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	redemptions := make([]domain.Redemption, 0)
	for rows.Next() {
		var (
			red    domain.Redemption
			status string
		)
		if err := rows.Scan(&red.ID, &red.UserID, &red.ItemID, &red.ItemTitle, &red.PointsCost, &status, &red.ShippingText, &red.CreatedAt); err != nil {
			zap.L().Error("can't scan redemption", zap.Error(err))
			return nil, err
		}
		if red.Status, err = domain.ParseRedemptionStatus(status); err != nil {
			return nil, err
		}
		redemptions = append(redemptions, red)
	}
	return redemptions, rows.Err()
}
