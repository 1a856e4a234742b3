// Package usecase implements the application logic: short code generation,
// quota-checked URL creation, ownership rules, redirect resolution with
// caching, and access logging.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type urlRepository interface {
	Save(ctx context.Context, accountID int64, day time.Time, shortCode, originalURL string) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	ListByAccount(ctx context.Context, accountID int64) ([]entity.URL, error)
	RemoveOwned(ctx context.Context, accountID int64, shortCode string) error
}

type accessRepository interface {
	Save(ctx context.Context, shortCode string, accessedAt time.Time, visit entity.Visit) error
	ListByAccount(ctx context.Context, accountID int64, shortCode string, page entity.Page) ([]entity.AccessEvent, error)
}

type urlCache interface {
	Get(ctx context.Context, shortCode string) (string, error)
	Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error
	Delete(ctx context.Context, shortCode string) error
}

type URLUseCase struct {
	codeGen    *CodeGenerator
	urlRepo    urlRepository
	accessRepo accessRepository
	cache      urlCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewURLUseCase creates the URL registry. A nil cache disables cache invalidation.
func NewURLUseCase(
	codeGen *CodeGenerator,
	urlRepo urlRepository,
	accessRepo accessRepository,
	cache urlCache,
	logger *slog.Logger,
) *URLUseCase {
	if cache == nil {
		cache = nopCache{}
	}

	return &URLUseCase{
		codeGen:    codeGen,
		urlRepo:    urlRepo,
		accessRepo: accessRepo,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// ShortenURL normalizes originalURL and stores it under a fresh short code,
// charging one unit of the account's daily quota. Quota and insert commit
// together; a code collision is retried with a new code.
func (uc *URLUseCase) ShortenURL(ctx context.Context, accountID int64, originalURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	normalized, err := NormalizeURL(originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	day := entity.Day(uc.now())

	for attempt := 1; attempt <= uc.codeGen.MaxAttempts(); attempt++ {
		shortCode, err := uc.codeGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, accountID, day, shortCode, normalized)
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				uc.logger.Warn("short code collision",
					slog.String("short_code", shortCode),
					slog.Int("attempt", attempt),
				)
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	uc.logger.Error("short code space exhausted, increase short code length",
		slog.Int("max_attempts", uc.codeGen.MaxAttempts()),
	)

	return nil, fmt.Errorf("%s: %w", op, entity.ErrCodeSpaceExhausted)
}

// GetURL returns the URL if it belongs to the account.
func (uc *URLUseCase) GetURL(ctx context.Context, accountID int64, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURL"

	if !isShortCode(shortCode) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if !url.OwnedBy(accountID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrForbidden)
	}

	return url, nil
}

func (uc *URLUseCase) ListURLs(ctx context.Context, accountID int64) ([]entity.URL, error) {
	const op = "usecase.URLUseCase.ListURLs"

	urls, err := uc.urlRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

// DeleteURL removes the URL and its access log. Cached redirects are
// invalidated on a best-effort basis and otherwise expire with their TTL.
func (uc *URLUseCase) DeleteURL(ctx context.Context, accountID int64, shortCode string) error {
	const op = "usecase.URLUseCase.DeleteURL"

	if !isShortCode(shortCode) {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	if err := uc.urlRepo.RemoveOwned(ctx, accountID, shortCode); err != nil {
		return fmt.Errorf("%s: failed to delete url: %w", op, err)
	}

	if err := uc.cache.Delete(ctx, shortCode); err != nil {
		uc.logger.Warn("failed to invalidate cached url",
			slog.String("short_code", shortCode),
			slog.Any("err", err),
		)
	}

	return nil
}

// ListAccessEvents returns the access log of the account's URLs, or of a
// single URL when shortCode is set.
func (uc *URLUseCase) ListAccessEvents(ctx context.Context, accountID int64, shortCode string, page entity.Page) ([]entity.AccessEvent, error) {
	const op = "usecase.URLUseCase.ListAccessEvents"

	if shortCode != "" {
		if _, err := uc.GetURL(ctx, accountID, shortCode); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	events, err := uc.accessRepo.ListByAccount(ctx, accountID, shortCode, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list access events: %w", op, err)
	}

	return events, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (string, error) {
	return "", entity.ErrCacheMiss
}

func (nopCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (nopCache) Delete(context.Context, string) error {
	return nil
}
