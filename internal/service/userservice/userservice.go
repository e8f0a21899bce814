//go:generate mockgen -source=userservice.go -destination=mock_userservice.go -package=userservice
package userservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	Stats(ctx context.Context, userID int) (*domain.ProfileStats, error)
}

type LedgerRepo interface {
	Balance(ctx context.Context, userID int) (int64, error)
}

type Profile struct {
	User  *domain.User         `json:"user"`
	Stats *domain.ProfileStats `json:"stats"`
}

type ProfileUpdate struct {
	DisplayName   string
	Bio           string
	City          string
	PublicProfile bool
}

type Service struct {
	userRepo    Repo
	ledger      LedgerRepo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	cfg         *config.Config
	now         func() time.Time
}

func New(repo Repo, ledger LedgerRepo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, cfg *config.Config) *Service {
	return &Service{
		userRepo:    repo,
		ledger:      ledger,
		hashService: hashService,
		jwtService:  jwtService,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Register creates an account. Emails listed in the admin config register as
// administrators.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, domain.ErrEmailTaken
	}
	hashed, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  displayName,
		IsAdmin:      s.cfg.IsAdminEmail(email),
	})
	if err != nil {
		zap.L().Error("can't create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	zap.L().Info("user registered", zap.Int("userID", user.ID), zap.Bool("admin", user.IsAdmin))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, user.IsAdmin, s.now().Add(s.cfg.TokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Int("userID", user.ID), zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) Profile(ctx context.Context, userID int) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats.Points, err = s.ledger.Balance(ctx, userID); err != nil {
		zap.L().Error("can't load balance for profile", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return &Profile{User: user, Stats: stats}, nil
}

// PublicProfile shows another user's profile when they opted in. The owner
// and admins always see it.
func (s *Service) PublicProfile(ctx context.Context, viewer *domain.Viewer, userID int) (*Profile, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.User.PublicProfile {
		return p, nil
	}
	if viewer != nil && (viewer.IsAdmin || viewer.UserID == userID) {
		return p, nil
	}
	return nil, fmt.Errorf("%w: profile %d is private", domain.ErrForbidden, userID)
}

// UpdateProfile keeps the current display name when the new one is blank.
func (s *Service) UpdateProfile(ctx context.Context, userID int, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	if name := strings.TrimSpace(upd.DisplayName); name != "" {
		user.DisplayName = name
	}
	user.Bio = strings.TrimSpace(upd.Bio)
	user.City = strings.TrimSpace(upd.City)
	user.PublicProfile = upd.PublicProfile

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		zap.L().Error("can't update profile", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
