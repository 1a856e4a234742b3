package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	usecaseMock "github.com/vadimbarashkov/shortenit/mocks/usecase"
)

type RedirectUseCaseTestSuite struct {
	suite.Suite
	errUnknown   error
	visit        entity.Visit
	urlRepoMock  *usecaseMock.MockUrlRepository
	cacheMock    *usecaseMock.MockUrlCache
	recorderMock *usecaseMock.MockAccessRecorder
	uc           *RedirectUseCase
}

func (suite *RedirectUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.visit = entity.Visit{
		IP:        "203.0.113.7",
		UserAgent: "curl/8.5.0",
		Referer:   "https://example.org",
	}
}

func (suite *RedirectUseCaseTestSuite) SetupSubTest() {
	suite.urlRepoMock = usecaseMock.NewMockUrlRepository(suite.T())
	suite.cacheMock = usecaseMock.NewMockUrlCache(suite.T())
	suite.recorderMock = usecaseMock.NewMockAccessRecorder(suite.T())

	suite.uc = NewRedirectUseCase(
		suite.urlRepoMock,
		suite.cacheMock,
		time.Minute,
		suite.recorderMock,
		discardLogger(),
	)
}

func (suite *RedirectUseCaseTestSuite) TearDownSubTest() {
	suite.urlRepoMock.AssertExpectations(suite.T())
	suite.cacheMock.AssertExpectations(suite.T())
	suite.recorderMock.AssertExpectations(suite.T())
}

func (suite *RedirectUseCaseTestSuite) TestResolveAndLog() {
	ctx := context.Background()

	suite.Run("malformed short code", func() {
		originalURL, err := suite.uc.ResolveAndLog(ctx, "no/such", suite.visit)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Empty(originalURL)
	})

	suite.Run("url not found", func() {
		suite.cacheMock.
			On("Get", ctx, "abc123").
			Once().
			Return("", entity.ErrCacheMiss)
		suite.urlRepoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		originalURL, err := suite.uc.ResolveAndLog(ctx, "abc123", suite.visit)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Empty(originalURL)
	})

	suite.Run("storage unavailable", func() {
		suite.cacheMock.
			On("Get", ctx, "abc123").
			Once().
			Return("", entity.ErrCacheMiss)
		suite.urlRepoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(nil, entity.ErrStorageUnavailable)

		originalURL, err := suite.uc.ResolveAndLog(ctx, "abc123", suite.visit)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Empty(originalURL)
	})

	suite.Run("cache hit", func() {
		suite.cacheMock.
			On("Get", ctx, "abc123").
			Once().
			Return("https://example.com", nil)
		suite.recorderMock.
			On("Record", ctx, "abc123", suite.visit).
			Once()

		originalURL, err := suite.uc.ResolveAndLog(ctx, "abc123", suite.visit)

		suite.NoError(err)
		suite.Equal("https://example.com", originalURL)
	})

	suite.Run("cache miss", func() {
		suite.cacheMock.
			On("Get", ctx, "abc123").
			Once().
			Return("", entity.ErrCacheMiss)
		suite.urlRepoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.URL{ID: 1, ShortCode: "abc123", OriginalURL: "https://example.com"}, nil)
		suite.cacheMock.
			On("Set", mock.Anything, "abc123", "https://example.com", time.Minute).
			Once().
			Return(nil)
		suite.recorderMock.
			On("Record", ctx, "abc123", suite.visit).
			Once()

		originalURL, err := suite.uc.ResolveAndLog(ctx, "abc123", suite.visit)

		suite.NoError(err)
		suite.Equal("https://example.com", originalURL)
	})

	suite.Run("cache failures ignored", func() {
		suite.cacheMock.
			On("Get", ctx, "abc123").
			Once().
			Return("", suite.errUnknown)
		suite.urlRepoMock.
			On("RetrieveByShortCode", mock.Anything, "abc123").
			Once().
			Return(&entity.URL{ID: 1, ShortCode: "abc123", OriginalURL: "https://example.com"}, nil)
		suite.cacheMock.
			On("Set", mock.Anything, "abc123", "https://example.com", time.Minute).
			Once().
			Return(suite.errUnknown)
		suite.recorderMock.
			On("Record", ctx, "abc123", suite.visit).
			Once()

		originalURL, err := suite.uc.ResolveAndLog(ctx, "abc123", suite.visit)

		suite.NoError(err)
		suite.Equal("https://example.com", originalURL)
	})
}

// blockingURLRepository serves RetrieveByShortCode only after release is
// closed, failing early if the lookup context is done.
type blockingURLRepository struct {
	urlRepository
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (r *blockingURLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	if r.calls.Add(1) == 1 {
		close(r.started)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.release:
		return &entity.URL{ID: 1, ShortCode: shortCode, OriginalURL: "https://example.com"}, nil
	}
}

func (suite *RedirectUseCaseTestSuite) TestResolveAndLogSharedLookup() {
	suite.Run("first visitor cancels", func() {
		repo := &blockingURLRepository{
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		uc := NewRedirectUseCase(repo, nil, time.Minute, suite.recorderMock, discardLogger())

		suite.recorderMock.
			On("Record", mock.Anything, "abc123", suite.visit).
			Twice()

		type result struct {
			url string
			err error
		}

		firstCtx, cancelFirst := context.WithCancel(context.Background())
		first := make(chan result, 1)
		second := make(chan result, 1)

		go func() {
			url, err := uc.ResolveAndLog(firstCtx, "abc123", suite.visit)
			first <- result{url, err}
		}()

		<-repo.started

		go func() {
			url, err := uc.ResolveAndLog(context.Background(), "abc123", suite.visit)
			second <- result{url, err}
		}()

		cancelFirst()
		time.Sleep(50 * time.Millisecond)
		close(repo.release)

		for _, ch := range []chan result{first, second} {
			select {
			case res := <-ch:
				suite.NoError(res.err)
				suite.Equal("https://example.com", res.url)
			case <-time.After(5 * time.Second):
				suite.FailNow("redirect did not complete")
			}
		}
	})
}

func TestRedirectUseCase(t *testing.T) {
	suite.Run(t, new(RedirectUseCaseTestSuite))
}
