//go:generate mockgen -source=rewardservice.go -destination=mock_rewardservice.go -package=rewardservice
package rewardservice

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/metrics"
	"github.com/GlebRadaev/komodohub/internal/pg"
)

const (
	donationCurrency = "CNY"
	donationProvider = "simulated"
	donationStatus   = "paid"
)

// maxDonation caps a single simulated payment.
var maxDonation = decimal.RequireFromString("1000000.00")

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	Balance(ctx context.Context, userID int) (int64, error)
}

type SigninRepo interface {
	Insert(ctx context.Context, userID int, day time.Time, points int64) (int, bool, error)
}

type QuestRepo interface {
	Upsert(ctx context.Context, userID int, code domain.QuestCode, day time.Time, progress int, completed bool) error
	MarkRewarded(ctx context.Context, userID int, code domain.QuestCode, day time.Time) (int, bool, error)
}

type DonationRepo interface {
	Create(ctx context.Context, d *domain.Donation) (int, error)
}

type ReportRepo interface {
	FindByID(ctx context.Context, id int) (*domain.SpeciesReport, error)
}

// Outcome is what a reward attempt did. Issued is false when an idempotency
// guard turned the call into a no-op; Balance is the balance afterwards either way.
type Outcome struct {
	Issued  bool  `json:"issued"`
	Points  int64 `json:"points"`
	Balance int64 `json:"balance"`
}

type Service struct {
	ledger    LedgerRepo
	signins   SigninRepo
	quests    QuestRepo
	donations DonationRepo
	reports   ReportRepo
	txManager pg.TXManager
	economy   config.Economy
	now       func() time.Time
}

func New(
	ledger LedgerRepo,
	signins SigninRepo,
	quests QuestRepo,
	donations DonationRepo,
	reports ReportRepo,
	txManager pg.TXManager,
	economy config.Economy,
) *Service {
	return &Service{
		ledger:    ledger,
		signins:   signins,
		quests:    quests,
		donations: donations,
		reports:   reports,
		txManager: txManager,
		economy:   economy,
		now:       time.Now,
	}
}

// SetClock replaces the time source used to derive the UTC day.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SignIn credits the daily sign-in once per user per UTC day.
func (s *Service) SignIn(ctx context.Context, userID int) (Outcome, error) {
	day := domain.Day(s.now())
	points := s.economy.SigninPoints()

	var out Outcome
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		out = Outcome{}
		id, inserted, err := s.signins.Insert(ctx, userID, day, points)
		if err != nil {
			return err
		}
		if inserted && points > 0 {
			if _, err := s.ledger.Append(ctx, &domain.LedgerEntry{
				UserID:  userID,
				Delta:   points,
				Reason:  domain.ReasonSignin,
				RefType: domain.RefSignin,
				RefID:   id,
			}); err != nil {
				return err
			}
		}
		out.Issued = inserted
		if inserted {
			out.Points = points
		}
		out.Balance, err = s.ledger.Balance(ctx, userID)
		return err
	})
	if err != nil {
		zap.L().Error("sign-in failed", zap.Int("userID", userID), zap.Error(err))
		return Outcome{}, err
	}

	s.record(domain.ReasonSignin, out)
	return out, nil
}

// ClaimQuest rewards a completed quest once per user per UTC day. Progress is
// read from counters, which only count when they belong to today.
func (s *Service) ClaimQuest(ctx context.Context, userID int, code string, counters domain.Counters) (Outcome, error) {
	questCode, err := domain.ParseQuestCode(code)
	if err != nil {
		return Outcome{}, err
	}
	quest, ok := s.economy.Quest(questCode)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: quest %q is not offered", domain.ErrNotFound, code)
	}

	now := s.now()
	progress := 0
	if counters.Date == domain.DateKey(now) {
		progress = counters.Get(questCode.Counter())
	}
	day := domain.Day(now)

	var out Outcome
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		out = Outcome{}
		if progress >= quest.Need {
			if err := s.quests.Upsert(ctx, userID, questCode, day, progress, true); err != nil {
				return err
			}
			id, marked, err := s.quests.MarkRewarded(ctx, userID, questCode, day)
			if err != nil {
				return err
			}
			if marked {
				if _, err := s.ledger.Append(ctx, &domain.LedgerEntry{
					UserID:  userID,
					Delta:   quest.Points,
					Reason:  domain.ReasonQuest,
					RefType: domain.RefQuest,
					RefID:   id,
				}); err != nil {
					return err
				}
				out.Issued = true
				out.Points = quest.Points
			}
		}
		var err error
		out.Balance, err = s.ledger.Balance(ctx, userID)
		return err
	})
	if err != nil {
		zap.L().Error("quest claim failed", zap.Int("userID", userID), zap.String("quest", code), zap.Error(err))
		return Outcome{}, err
	}

	s.record(domain.ReasonQuest, out)
	return out, nil
}

// Donate records a simulated paid donation towards a report and credits
// floor(amount) x points-per-unit. Every donation is rewarded.
func (s *Service) Donate(ctx context.Context, userID int, viewer *domain.Viewer, reportID int, amount decimal.Decimal) (Outcome, error) {
	if !amount.IsPositive() {
		return Outcome{}, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	if !amount.Equal(amount.Round(2)) {
		return Outcome{}, fmt.Errorf("%w: amount has more than two decimal places", domain.ErrValidation)
	}
	if amount.GreaterThan(maxDonation) {
		return Outcome{}, fmt.Errorf("%w: amount must not exceed %s", domain.ErrValidation, maxDonation.StringFixed(2))
	}
	cents := amount.Shift(2).IntPart()
	pointsDec := amount.Floor().Mul(decimal.NewFromInt(s.economy.PointsPerUnit()))
	if pointsDec.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return Outcome{}, fmt.Errorf("%w: donation reward out of range", domain.ErrValidation)
	}
	points := pointsDec.IntPart()

	var out Outcome
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		out = Outcome{}
		report, err := s.reports.FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		if report == nil {
			return fmt.Errorf("%w: report %d", domain.ErrNotFound, reportID)
		}
		if !report.VisibleTo(viewer) {
			return fmt.Errorf("%w: report %d", domain.ErrForbidden, reportID)
		}

		donationID, err := s.donations.Create(ctx, &domain.Donation{
			UserID:      userID,
			ReportID:    &report.ID,
			SpeciesName: report.SpeciesName,
			AmountCents: cents,
			Currency:    donationCurrency,
			Provider:    donationProvider,
			Status:      donationStatus,
		})
		if err != nil {
			return err
		}
		if points > 0 {
			if _, err := s.ledger.Append(ctx, &domain.LedgerEntry{
				UserID:  userID,
				Delta:   points,
				Reason:  domain.ReasonDonate,
				RefType: domain.RefDonation,
				RefID:   donationID,
			}); err != nil {
				return err
			}
		}
		out.Issued = points > 0
		out.Points = points
		out.Balance, err = s.ledger.Balance(ctx, userID)
		return err
	})
	if err != nil {
		zap.L().Warn("donation failed", zap.Int("userID", userID), zap.Int("reportID", reportID), zap.Error(err))
		return Outcome{}, err
	}

	zap.L().Info("donation recorded",
		zap.Int("userID", userID),
		zap.Int("reportID", reportID),
		zap.Int64("cents", cents),
		zap.Int64("points", points),
	)
	s.record(domain.ReasonDonate, out)
	return out, nil
}

func (s *Service) record(reason domain.LedgerReason, out Outcome) {
	if !out.Issued {
		metrics.RewardsSkipped.WithLabelValues(string(reason)).Inc()
		return
	}
	metrics.RewardsIssued.WithLabelValues(string(reason)).Inc()
	metrics.PointsIssued.WithLabelValues(string(reason)).Add(float64(out.Points))
}
