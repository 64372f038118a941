package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "github.com/fmcg-app/catalog-api/docs"
	"github.com/fmcg-app/catalog-api/internal/api"
	"github.com/fmcg-app/catalog-api/internal/api/handler"
	"github.com/fmcg-app/catalog-api/internal/api/middleware"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
	"github.com/fmcg-app/catalog-api/internal/core/service"
	"github.com/fmcg-app/catalog-api/internal/infrastructure/config"
	"github.com/fmcg-app/catalog-api/internal/infrastructure/db/memory"
	mongodb "github.com/fmcg-app/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fmcg-app/catalog-api/internal/infrastructure/db/redis"
	"github.com/fmcg-app/catalog-api/internal/infrastructure/security"
	"github.com/fmcg-app/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           FMCG Catalog API
// @version         1.0
// @description     Product catalog and user management with JWT authentication and role-based access.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "catalog-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

type stores struct {
	users    ports.UserRepository
	products ports.ProductRepository
	close    func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := map[string]handler.Pinger{}

	st, err := openStores(ctx, cfg, readiness, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	limiter, closeLimiter, err := openRateLimiter(ctx, cfg, readiness, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	tokens := service.NewTokenService(cfg.JWTSecret)
	hasher := security.NewBcryptHasher(0)

	e := api.NewRouter(api.Dependencies{
		Auth:           service.NewAuthService(st.users, hasher, tokens, log),
		Users:          service.NewUserService(st.users, log),
		Products:       service.NewProductService(st.products, log),
		Tokens:         tokens,
		Logger:         log,
		RateLimitStore: limiter,
		Readiness:      readiness,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		BodyLimit:      cfg.HTTP.BodyLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, readiness map[string]handler.Pinger, log zerolog.Logger) (stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return stores{
			users:    memory.NewUserRepository(),
			products: memory.NewProductRepository(),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return stores{}, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return stores{}, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	readiness["mongodb"] = mongodb.Pinger{Client: client}
	return stores{
		users:    mongodb.NewUserRepository(db),
		products: mongodb.NewProductRepository(db),
		close:    client.Disconnect,
	}, nil
}

// openRateLimiter shares counters through Redis when REDIS_ADDR is set and
// falls back to a per-process limiter otherwise.
func openRateLimiter(ctx context.Context, cfg *config.Config, readiness map[string]handler.Pinger, log zerolog.Logger) (echomiddleware.RateLimiterStore, func(), error) {
	if cfg.Redis.Addr == "" {
		return middleware.NewMemoryStore(cfg.RateLimit.Requests, cfg.RateLimit.Window), func() {}, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	readiness["redis"] = redisdb.Pinger{Client: client}
	store := redisdb.NewRateLimitStore(client, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)
	return store, func() { _ = client.Close() }, nil
}
