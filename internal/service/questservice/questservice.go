//go:generate mockgen -source=questservice.go -destination=mock_questservice.go -package=questservice
package questservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/domain"
)

// CounterStore keeps the per-user daily action counters. Counters for a date
// other than the requested one are never returned.
type CounterStore interface {
	Incr(ctx context.Context, userID int, date string, kind domain.CounterKind) error
	Get(ctx context.Context, userID int, date string) (domain.Counters, error)
}

type SigninRepo interface {
	Exists(ctx context.Context, userID int, day time.Time) (bool, error)
}

type QuestRepo interface {
	ListForDay(ctx context.Context, userID int, day time.Time) ([]domain.QuestLog, error)
}

type QuestStatus struct {
	Code     domain.QuestCode `json:"code"`
	Title    string           `json:"title"`
	Need     int              `json:"need"`
	Points   int64            `json:"points"`
	Progress int              `json:"progress"`
	Done     bool             `json:"done"`
	Rewarded bool             `json:"rewarded"`
}

type Board struct {
	Date         string        `json:"date"`
	Quests       []QuestStatus `json:"quests"`
	SignedToday  bool          `json:"signed_today"`
	SigninPoints int64         `json:"signin_points"`
}

// Service tracks quest progress. It never writes the ledger; rewards are
// claimed through the reward service with a Snapshot of the counters.
type Service struct {
	store   CounterStore
	signins SigninRepo
	quests  QuestRepo
	economy config.Economy
	now     func() time.Time
}

func New(store CounterStore, signins SigninRepo, quests QuestRepo, economy config.Economy) *Service {
	return &Service{
		store:   store,
		signins: signins,
		quests:  quests,
		economy: economy,
		now:     time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Bump increments today's counter for kind. Store failures are logged and
// reported as false.
func (s *Service) Bump(ctx context.Context, userID int, kind domain.CounterKind) bool {
	if err := s.store.Incr(ctx, userID, domain.DateKey(s.now()), kind); err != nil {
		zap.L().Warn("can't bump quest counter",
			zap.Int("userID", userID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Snapshot returns today's counters, zeroed when the store is unavailable.
func (s *Service) Snapshot(ctx context.Context, userID int) domain.Counters {
	today := domain.DateKey(s.now())
	counters, err := s.store.Get(ctx, userID, today)
	if err != nil {
		zap.L().Warn("can't read quest counters", zap.Int("userID", userID), zap.Error(err))
		return domain.Counters{Date: today}
	}
	if counters.Date != today {
		return domain.Counters{Date: today}
	}
	return counters
}

func (s *Service) Board(ctx context.Context, userID int) (*Board, error) {
	now := s.now()
	day := domain.Day(now)
	counters := s.Snapshot(ctx, userID)

	logs, err := s.quests.ListForDay(ctx, userID, day)
	if err != nil {
		zap.L().Error("failed to list quest logs", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	rewarded := make(map[domain.QuestCode]bool, len(logs))
	for _, l := range logs {
		rewarded[l.Code] = l.Rewarded
	}

	signed, err := s.signins.Exists(ctx, userID, day)
	if err != nil {
		zap.L().Error("failed to check sign-in", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}

	quests := s.economy.Quests()
	board := &Board{
		Date:         domain.DateKey(now),
		Quests:       make([]QuestStatus, 0, len(quests)),
		SignedToday:  signed,
		SigninPoints: s.economy.SigninPoints(),
	}
	for _, q := range quests {
		progress := counters.Get(q.Code.Counter())
		board.Quests = append(board.Quests, QuestStatus{
			Code:     q.Code,
			Title:    q.Title,
			Need:     q.Need,
			Points:   q.Points,
			Progress: progress,
			Done:     progress >= q.Need,
			Rewarded: rewarded[q.Code],
		})
	}
	return board, nil
}
