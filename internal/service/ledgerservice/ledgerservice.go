//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice
package ledgerservice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/metrics"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type Repo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	Balance(ctx context.Context, userID int) (int64, error)
	History(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error)
	LockAccount(ctx context.Context, userID int) (bool, error)
}

type Service struct {
	repo      Repo
	txManager pg.TXManager
}

func New(repo Repo, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (int64, error) {
	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int("userID", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (s *Service) GetHistory(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	entries, err := s.repo.History(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to get ledger history", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// Adjust writes an admin correction. Debits can't take the balance below zero.
func (s *Service) Adjust(ctx context.Context, adminID, userID int, delta int64, note string) (int64, error) {
	if delta == 0 {
		return 0, fmt.Errorf("%w: adjustment must not be zero", domain.ErrValidation)
	}

	var balance int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		found, err := s.repo.LockAccount(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
		}
		current, err := s.repo.Balance(ctx, userID)
		if err != nil {
			return err
		}
		if current+delta < 0 {
			return fmt.Errorf("%w: balance %d, adjustment %d", domain.ErrInsufficientPoints, current, delta)
		}
		if _, err := s.repo.Append(ctx, &domain.LedgerEntry{
			UserID:  userID,
			Delta:   delta,
			Reason:  domain.ReasonAdjust,
			RefType: domain.RefUser,
			RefID:   adminID,
			Note:    strings.TrimSpace(note),
		}); err != nil {
			return err
		}
		balance = current + delta
		return nil
	})
	if err != nil {
		zap.L().Warn("adjustment failed", zap.Int("userID", userID), zap.Int64("delta", delta), zap.Error(err))
		return 0, err
	}

	zap.L().Info("balance adjusted", zap.Int("adminID", adminID), zap.Int("userID", userID), zap.Int64("delta", delta))
	if delta > 0 {
		metrics.PointsIssued.WithLabelValues(string(domain.ReasonAdjust)).Add(float64(delta))
	}
	return balance, nil
}
