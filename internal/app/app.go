// Package app wires configuration, storage, caches and use cases into the
// running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortenit/internal/adapter/cache/memory"
	"github.com/vadimbarashkov/shortenit/internal/adapter/cache/redis"
	"github.com/vadimbarashkov/shortenit/internal/config"
	"github.com/vadimbarashkov/shortenit/internal/usecase"
	"github.com/vadimbarashkov/shortenit/pkg/postgres"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortenit/internal/adapter/delivery/http"
	repository "github.com/vadimbarashkov/shortenit/internal/adapter/repository/postgres"
)

type urlCache interface {
	Get(ctx context.Context, shortCode string) (string, error)
	Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error
	Delete(ctx context.Context, shortCode string) error
}

// NewLogger returns the service logger: JSON in prod, concise text elsewhere.
func NewLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		Tags:            map[string]string{"env": env},
		QuietDownRoutes: []string{"/api/v1/ping", "/metrics"},
		QuietDownPeriod: 10 * time.Second,
	}

	if env == config.EnvProd {
		opts.JSON = true
		opts.Concise = false
		opts.LogLevel = slog.LevelInfo
	}

	return httplog.NewLogger("shortenit", opts)
}

// ConnectDB opens the connection pool described by cfg.
func ConnectDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	return postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
}

// NewAccountUseCase builds the account management use case used by the CLI.
func NewAccountUseCase(db *sqlx.DB, cfg *config.Config) *usecase.AccountUseCase {
	accountRepo := repository.NewAccountRepository(db, repository.WithQueryTimeout(cfg.Postgres.QueryTimeout))
	return usecase.NewAccountUseCase(accountRepo, cfg.Quota.DefaultDailyLimit)
}

// Run serves HTTP until ctx is cancelled. Requests in flight are allowed to
// finish, then the access log queue is drained.
func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	db, err := ConnectDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	cache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to set up cache: %w", op, err)
	}
	defer closeCache()

	router, recorder := newHandler(db, cache, cfg, logger)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	recorderCtx, stopRecorder := context.WithCancel(context.WithoutCancel(ctx))
	defer stopRecorder()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", server.Addr), slog.Bool("tls", cfg.HTTPServer.TLS()))

		var err error
		if cfg.HTTPServer.TLS() {
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		if err := recorder.Run(recorderCtx); err != nil {
			return fmt.Errorf("%s: access recorder failed: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		defer stopRecorder()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

// newHandler wires repositories and use cases into the HTTP router. The
// returned recorder must be run for asynchronous access logging.
func newHandler(db *sqlx.DB, cache urlCache, cfg *config.Config, logger *httplog.Logger) (http.Handler, *usecase.AccessRecorder) {
	repoOpts := []repository.Option{repository.WithQueryTimeout(cfg.Postgres.QueryTimeout)}
	urlRepo := repository.NewURLRepository(db, repoOpts...)
	accessRepo := repository.NewAccessRepository(db, repoOpts...)
	accountRepo := repository.NewAccountRepository(db, repoOpts...)

	codeGen := usecase.NewCodeGenerator(cfg.ShortCode.Length, cfg.ShortCode.MaxAttempts)
	recorder := usecase.NewAccessRecorder(
		accessRepo,
		logger.Logger,
		cfg.AccessLog.Workers,
		cfg.AccessLog.Buffer,
		cfg.AccessLog.WriteTimeout,
	)

	urlUseCase := usecase.NewURLUseCase(codeGen, urlRepo, accessRepo, cache, logger.Logger)
	redirectUseCase := usecase.NewRedirectUseCase(urlRepo, cache, cfg.Cache.TTL, recorder, logger.Logger)
	accountUseCase := usecase.NewAccountUseCase(accountRepo, cfg.Quota.DefaultDailyLimit)

	router := delivery.NewRouter(
		logger,
		delivery.Options{
			BaseURL: cfg.BaseURL,
			Retry: delivery.RetryOptions{
				InitialInterval: cfg.Retry.InitialInterval,
				MaxInterval:     cfg.Retry.MaxInterval,
				MaxElapsedTime:  cfg.Retry.MaxElapsedTime,
			},
		},
		urlUseCase,
		redirectUseCase,
		accountUseCase,
	)

	return router, recorder
}

// newCache builds the redirect cache selected by cfg.Cache.Driver. The
// returned cache is nil for the none driver.
func newCache(ctx context.Context, cfg *config.Config) (urlCache, func(), error) {
	const op = "app.newCache"

	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		return memory.New(cfg.Cache.TTL, 2*cfg.Cache.TTL), func() {}, nil
	case config.CacheDriverRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:         cfg.Cache.Redis.Addr,
			Password:     cfg.Cache.Redis.Password,
			DB:           cfg.Cache.Redis.DB,
			PoolSize:     cfg.Cache.Redis.PoolSize,
			DialTimeout:  cfg.Cache.Redis.DialTimeout,
			ReadTimeout:  cfg.Cache.Redis.ReadTimeout,
			WriteTimeout: cfg.Cache.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		return redis.New(client), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
