package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type CacheTestSuite struct {
	suite.Suite
	server *miniredis.Miniredis
	client *redis.Client
	cache  *Cache
}

func (suite *CacheTestSuite) SetupSubTest() {
	suite.server = miniredis.RunT(suite.T())

	client, err := NewClient(context.Background(), Options{Addr: suite.server.Addr()})
	suite.Require().NoError(err)

	suite.client = client
	suite.cache = New(client)
}

func (suite *CacheTestSuite) TearDownSubTest() {
	suite.client.Close()
}

func (suite *CacheTestSuite) TestNewClient() {
	suite.Run("unreachable server", func() {
		addr := suite.server.Addr()
		suite.server.Close()

		client, err := NewClient(context.Background(), Options{Addr: addr, DialTimeout: 100 * time.Millisecond})

		suite.Error(err)
		suite.Nil(client)
	})
}

func (suite *CacheTestSuite) TestGet() {
	ctx := context.Background()

	suite.Run("cache miss", func() {
		originalURL, err := suite.cache.Get(ctx, "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrCacheMiss)
		suite.Empty(originalURL)
	})

	suite.Run("server error", func() {
		suite.server.SetError("ERR server failure")

		originalURL, err := suite.cache.Get(ctx, "abc123")

		suite.Error(err)
		suite.NotErrorIs(err, entity.ErrCacheMiss)
		suite.Empty(originalURL)
	})

	suite.Run("success", func() {
		suite.Require().NoError(suite.server.Set(keyPrefix+"abc123", "https://example.com"))

		originalURL, err := suite.cache.Get(ctx, "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com", originalURL)
	})
}

func (suite *CacheTestSuite) TestSet() {
	ctx := context.Background()

	suite.Run("entry expires", func() {
		err := suite.cache.Set(ctx, "abc123", "https://example.com", time.Minute)
		suite.NoError(err)

		suite.Equal(time.Minute, suite.server.TTL(keyPrefix+"abc123"))

		suite.server.FastForward(2 * time.Minute)

		_, err = suite.cache.Get(ctx, "abc123")
		suite.ErrorIs(err, entity.ErrCacheMiss)
	})

	suite.Run("success", func() {
		err := suite.cache.Set(ctx, "abc123", "https://example.com", 0)
		suite.NoError(err)

		got, err := suite.server.Get(keyPrefix + "abc123")
		suite.NoError(err)
		suite.Equal("https://example.com", got)
	})
}

func (suite *CacheTestSuite) TestDelete() {
	ctx := context.Background()

	suite.Run("missing key", func() {
		suite.NoError(suite.cache.Delete(ctx, "abc123"))
	})

	suite.Run("success", func() {
		suite.Require().NoError(suite.server.Set(keyPrefix+"abc123", "https://example.com"))

		suite.NoError(suite.cache.Delete(ctx, "abc123"))
		suite.False(suite.server.Exists(keyPrefix + "abc123"))
	})
}

func TestCache(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}
