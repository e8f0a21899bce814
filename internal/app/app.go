package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/cache"
	"github.com/GlebRadaev/komodohub/internal/config"
	"github.com/GlebRadaev/komodohub/internal/handlers"
	"github.com/GlebRadaev/komodohub/internal/pg"
	"github.com/GlebRadaev/komodohub/internal/repo"
	"github.com/GlebRadaev/komodohub/internal/service"
	"github.com/GlebRadaev/komodohub/internal/service/questservice"
	"github.com/GlebRadaev/komodohub/internal/taxonomy"
	pkgauth "github.com/GlebRadaev/komodohub/pkg/auth"
	"github.com/GlebRadaev/komodohub/pkg/clients"
	"github.com/GlebRadaev/komodohub/pkg/logger"
	"github.com/GlebRadaev/komodohub/pkg/storage"
)

const mediaPrefix = "/media"

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	pool  *pgxpool.Pool
	redis *redis.Client

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	err = logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	economy, err := config.LoadEconomy(cfg.EconomyFile)
	if err != nil {
		zap.L().Error("economy config failed: ", zap.Error(err))
		return fmt.Errorf("can't load economy: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.pool = pool
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	counters, taxonomyCache, err := a.buildCaches(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't build caches: %w", err)
	}

	files, media, err := buildStorage(ctx, cfg.Storage)
	if err != nil {
		zap.L().Error("storage init failed: ", zap.Error(err))
		return fmt.Errorf("can't init storage: %w", err)
	}

	a.cfg = cfg
	a.repo = repo.New(pg.New(pool))
	a.srv = service.New(a.repo, service.Deps{
		Config:        cfg,
		Economy:       economy,
		TXManager:     txManager,
		Storage:       files,
		Counters:      counters,
		TaxonomyCache: taxonomyCache,
		HTTPClient:    clients.NewHTTPClient(),
		JWT:           pkgauth.NewJWTService(cfg.JWTSecret),
	})
	a.api = handlers.New(a.srv, media)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startCleanup(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// buildCaches prefers Redis so counters survive restarts and are shared
// between replicas; without REDIS_ADDR everything stays in process.
func (a *Application) buildCaches(ctx context.Context, cfg *config.Config) (questservice.CounterStore, taxonomy.Cache, error) {
	if cfg.RedisAddr == "" {
		zap.L().Info("redis not configured, using in-memory caches")
		return cache.NewMemoryCounters(), cache.NewMemoryTaxonomyCache(cfg.Taxonomy.CacheTTL), nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		zap.L().Error("redis connect failed: ", zap.Error(err))
		return nil, nil, err
	}
	a.redis = client
	return cache.NewRedisCounters(client), cache.NewRedisTaxonomyCache(client, cfg.Taxonomy.CacheTTL), nil
}

// buildStorage returns the photo store and, for the local backend, the
// handler that serves stored files under /media.
func buildStorage(ctx context.Context, cfg config.StorageConfig) (*storage.FileStorage, http.Handler, error) {
	switch cfg.Backend {
	case "s3":
		backend, err := storage.NewS3Backend(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := backend.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		return storage.New(backend, cfg.MaxFileSize), nil, nil
	case "", "local":
		backend, err := storage.NewLocalBackend(cfg.MediaRoot, mediaPrefix)
		if err != nil {
			return nil, nil, err
		}
		return storage.New(backend, cfg.MaxFileSize), http.FileServer(http.Dir(backend.Root())), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

// startCleanup releases the database pool and the redis client once the
// server has been asked to stop.
func (a *Application) startCleanup(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				zap.L().Warn("redis close failed", zap.Error(err))
			}
		}
		if a.pool != nil {
			a.pool.Close()
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
