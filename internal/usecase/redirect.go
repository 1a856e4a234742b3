package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/metrics"
	"golang.org/x/sync/singleflight"
)

type accessRecorder interface {
	Record(ctx context.Context, shortCode string, visit entity.Visit)
}

// RedirectUseCase resolves short codes for visitors and logs every redirect.
// The cache is an optimization only: a cached URL may outlive its deletion
// by up to one TTL.
type RedirectUseCase struct {
	urlRepo  urlRepository
	cache    urlCache
	cacheTTL time.Duration
	recorder accessRecorder
	logger   *slog.Logger
	lookups  singleflight.Group
}

func NewRedirectUseCase(
	urlRepo urlRepository,
	cache urlCache,
	cacheTTL time.Duration,
	recorder accessRecorder,
	logger *slog.Logger,
) *RedirectUseCase {
	if cache == nil {
		cache = nopCache{}
	}

	return &RedirectUseCase{
		urlRepo:  urlRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		recorder: recorder,
		logger:   logger,
	}
}

// ResolveAndLog returns the original URL for shortCode and records the visit.
// Recording failures are logged by the recorder and never fail the redirect.
func (uc *RedirectUseCase) ResolveAndLog(ctx context.Context, shortCode string, visit entity.Visit) (string, error) {
	const op = "usecase.RedirectUseCase.ResolveAndLog"

	originalURL, err := uc.lookup(ctx, shortCode)
	if err != nil {
		return "", fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	uc.recorder.Record(ctx, shortCode, visit)

	return originalURL, nil
}

func (uc *RedirectUseCase) lookup(ctx context.Context, shortCode string) (string, error) {
	if !isShortCode(shortCode) {
		return "", entity.ErrURLNotFound
	}

	originalURL, err := uc.cache.Get(ctx, shortCode)
	switch {
	case err == nil:
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return originalURL, nil
	case errors.Is(err, entity.ErrCacheMiss):
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		uc.logger.Warn("redirect cache lookup failed",
			slog.String("short_code", shortCode),
			slog.Any("err", err),
		)
	}

	// The lookup is shared by every caller waiting on shortCode, so it must
	// outlive the caller that started it. Repository timeouts still apply.
	sharedCtx := context.WithoutCancel(ctx)

	v, err, _ := uc.lookups.Do(shortCode, func() (any, error) {
		url, err := uc.urlRepo.RetrieveByShortCode(sharedCtx, shortCode)
		if err != nil {
			return "", err
		}

		if err := uc.cache.Set(sharedCtx, shortCode, url.OriginalURL, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache url",
				slog.String("short_code", shortCode),
				slog.Any("err", err),
			)
		}

		return url.OriginalURL, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
