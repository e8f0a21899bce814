//go:generate mockgen -source=shopservice.go -destination=mock_shopservice.go -package=shopservice
package shopservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/metrics"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

type ShopRepo interface {
	ListItems(ctx context.Context) ([]domain.ShopItem, error)
	FindItemForUpdate(ctx context.Context, id int) (*domain.ShopItem, error)
	DecrementStock(ctx context.Context, id int) error
	CreateRedemption(ctx context.Context, red *domain.Redemption) (int, error)
	ListRedemptions(ctx context.Context, userID int) ([]domain.Redemption, error)
}

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	Balance(ctx context.Context, userID int) (int64, error)
	LockAccount(ctx context.Context, userID int) (bool, error)
}

type Receipt struct {
	Redemption *domain.Redemption `json:"redemption"`
	Balance    int64              `json:"balance"`
}

type Service struct {
	shop      ShopRepo
	ledger    LedgerRepo
	txManager pg.TXManager
}

func New(shop ShopRepo, ledger LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{
		shop:      shop,
		ledger:    ledger,
		txManager: txManager,
	}
}

func (s *Service) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	items, err := s.shop.ListItems(ctx)
	if err != nil {
		zap.L().Error("failed to list shop items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *Service) ListRedemptions(ctx context.Context, userID int) ([]domain.Redemption, error) {
	reds, err := s.shop.ListRedemptions(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list redemptions", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return reds, nil
}

// Redeem spends points on an item. The item row and the user's account are
// locked, and the redemption, the debit and the stock decrement commit together.
func (s *Service) Redeem(ctx context.Context, userID, itemID int, shippingText string) (*Receipt, error) {
	shippingText = strings.TrimSpace(shippingText)

	var receipt *Receipt
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		receipt = nil
		item, err := s.shop.FindItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.Status != domain.ItemActive {
			return fmt.Errorf("%w: item %d", domain.ErrNotFound, itemID)
		}

		found, err := s.ledger.LockAccount(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
		}
		balance, err := s.ledger.Balance(ctx, userID)
		if err != nil {
			return err
		}
		if balance < item.PointsCost {
			return fmt.Errorf("%w: balance %d, cost %d", domain.ErrInsufficientPoints, balance, item.PointsCost)
		}
		if !item.InStock() {
			return fmt.Errorf("%w: item %d", domain.ErrOutOfStock, itemID)
		}
		if item.Kind == domain.ItemPhysical && shippingText == "" {
			return fmt.Errorf("%w: shipping details are required for physical items", domain.ErrValidation)
		}

		red := &domain.Redemption{
			UserID:       userID,
			ItemID:       item.ID,
			ItemTitle:    item.Title,
			PointsCost:   item.PointsCost,
			Status:       domain.RedemptionPending,
			ShippingText: shippingText,
		}
		if red.ID, err = s.shop.CreateRedemption(ctx, red); err != nil {
			return err
		}
		if _, err := s.ledger.Append(ctx, &domain.LedgerEntry{
			UserID:  userID,
			Delta:   -item.PointsCost,
			Reason:  domain.ReasonRedeem,
			RefType: domain.RefRedemption,
			RefID:   red.ID,
		}); err != nil {
			return err
		}
		if item.Stock != nil {
			if err := s.shop.DecrementStock(ctx, item.ID); err != nil {
				return err
			}
		}
		receipt = &Receipt{Redemption: red, Balance: balance - item.PointsCost}
		return nil
	})
	if err != nil {
		metrics.Redemptions.WithLabelValues(redeemResult(err)).Inc()
		zap.L().Warn("redemption failed", zap.Int("userID", userID), zap.Int("itemID", itemID), zap.Error(err))
		return nil, err
	}

	metrics.Redemptions.WithLabelValues("ok").Inc()
	zap.L().Info("item redeemed",
		zap.Int("userID", userID),
		zap.Int("itemID", itemID),
		zap.Int("redemptionID", receipt.Redemption.ID),
		zap.Int64("cost", receipt.Redemption.PointsCost),
	)
	return receipt, nil
}

func redeemResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	}
	return "error"
}
