//go:build integration

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/GlebRadaev/komodohub/internal/cache"
	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/domain"
	"github.com/GlebRadaev/komodohub/internal/pg"
	"github.com/GlebRadaev/komodohub/internal/repo"
	pkgauth "github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/clients"
	"github.com/GlebRadaev/komodohub/pkg/storage"
)

const workers = 8

func newIntegrationServices(t *testing.T) (*Services, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("komodohub_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.RunMigrations(ctx, pool))

	backend, err := storage.NewLocalBackend(t.TempDir(), "/media")
	require.NoError(t, err)

	services := New(repo.New(pg.New(pool)), Deps{
		Config:        &config.Config{TokenTTL: time.Hour},
		Economy:       config.DefaultEconomy(),
		TXManager:     pg.NewTXManager(pool),
		Storage:       storage.New(backend, 5<<20),
		Counters:      cache.NewMemoryCounters(),
		TaxonomyCache: cache.NewMemoryTaxonomyCache(time.Hour),
		HTTPClient:    clients.NewHTTPClient(),
		JWT:           pkgauth.NewJWTService("secret"),
	})
	return services, pool
}

func registerUser(t *testing.T, s *Services, name string) *domain.User {
	t.Helper()
	u, err := s.UserService.Register(context.Background(), name+"@komodo.test", "password123", name)
	require.NoError(t, err)
	return u
}

func assertLedgerConsistent(t *testing.T, s *Services, pool *pgxpool.Pool, userID int) {
	t.Helper()
	ctx := context.Background()

	var sum int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM points_ledger WHERE user_id = $1`, userID).Scan(&sum))
	balance, err := s.LedgerService.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, sum, balance)
	assert.GreaterOrEqual(t, balance, int64(0))
}

func TestIntegration_ConcurrentSignIn(t *testing.T) {
	s, pool := newIntegrationServices(t)
	u := registerUser(t, s, "signin")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.RewardService.SignIn(context.Background(), u.ID)
			if !assert.NoError(t, err) {
				return
			}
			if out.Issued {
				mu.Lock()
				issued++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, issued)
	balance, err := s.LedgerService.GetBalance(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEconomy().SigninPoints(), balance)
	assertLedgerConsistent(t, s, pool, u.ID)
}

func TestIntegration_ConcurrentQuestClaim(t *testing.T) {
	s, pool := newIntegrationServices(t)
	u := registerUser(t, s, "quester")
	counters := domain.Counters{Date: domain.DateKey(time.Now()), Views: 5}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.RewardService.ClaimQuest(context.Background(), u.ID, string(domain.QuestView5), counters)
			if !assert.NoError(t, err) {
				return
			}
			if out.Issued {
				mu.Lock()
				issued++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, issued)
	assertLedgerConsistent(t, s, pool, u.ID)
}

func TestIntegration_LastItemRedeemedOnce(t *testing.T) {
	s, pool := newIntegrationServices(t)
	ctx := context.Background()
	admin := registerUser(t, s, "admin")

	var itemID int
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO shop_items (kind, title, points_cost, stock) VALUES ('virtual', 'Last badge', 50, 1) RETURNING id`).Scan(&itemID))

	users := make([]*domain.User, workers)
	for i := range users {
		users[i] = registerUser(t, s, fmt.Sprintf("buyer%d", i))
		_, err := s.LedgerService.Adjust(ctx, admin.ID, users[i].ID, 100, "seed")
		require.NoError(t, err)
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		redeemed   int
		outOfStock int
	)
	for _, u := range users {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := s.ShopService.Redeem(context.Background(), userID, itemID, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				redeemed++
			case errors.Is(err, domain.ErrOutOfStock):
				outOfStock++
			default:
				t.Errorf("unexpected redeem error: %v", err)
			}
		}(u.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, redeemed)
	assert.Equal(t, workers-1, outOfStock)

	var stock int
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock FROM shop_items WHERE id = $1`, itemID).Scan(&stock))
	assert.Equal(t, 0, stock)
	for _, u := range users {
		assertLedgerConsistent(t, s, pool, u.ID)
	}
}

func TestIntegration_OverdraftRejected(t *testing.T) {
	s, pool := newIntegrationServices(t)
	ctx := context.Background()
	admin := registerUser(t, s, "admin")
	u := registerUser(t, s, "spender")

	_, err := s.LedgerService.Adjust(ctx, admin.ID, u.ID, 120, "seed")
	require.NoError(t, err)

	var itemID int
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO shop_items (kind, title, points_cost) VALUES ('virtual', 'Avatar', 100) RETURNING id`).Scan(&itemID))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.ShopService.Redeem(context.Background(), u.ID, itemID, "")
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	balance, err := s.LedgerService.GetBalance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
	assertLedgerConsistent(t, s, pool, u.ID)
}

func TestIntegration_DonateThenRedeem(t *testing.T) {
	s, pool := newIntegrationServices(t)
	ctx := context.Background()
	reporter := registerUser(t, s, "reporter")
	donor := registerUser(t, s, "donor")

	var reportID, itemID int
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO species_reports (reporter_id, title, species_name, status) VALUES ($1, 'Dragon', 'Varanus komodoensis', 'approved') RETURNING id`,
		reporter.ID).Scan(&reportID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO shop_items (kind, title, points_cost) VALUES ('virtual', 'Sticker pack', 100) RETURNING id`).Scan(&itemID))

	balance, err := s.LedgerService.GetBalance(ctx, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	out, err := s.RewardService.Donate(ctx, donor.ID, &domain.Viewer{UserID: donor.ID}, reportID, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.True(t, out.Issued)
	assert.Equal(t, int64(100), out.Points)
	assert.Equal(t, int64(100), out.Balance)

	receipt, err := s.ShopService.Redeem(ctx, donor.ID, itemID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), receipt.Balance)
	assert.Equal(t, domain.RedemptionPending, receipt.Redemption.Status)

	reds, err := s.ShopService.ListRedemptions(ctx, donor.ID)
	require.NoError(t, err)
	require.Len(t, reds, 1)
	assert.Equal(t, domain.RedemptionPending, reds[0].Status)
	assert.Equal(t, int64(100), reds[0].PointsCost)

	assertLedgerConsistent(t, s, pool, donor.ID)
	balance, err = s.LedgerService.GetBalance(ctx, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
