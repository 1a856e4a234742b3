//go:build integration

package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/shortenit/internal/config"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/usecase"
	"github.com/vadimbarashkov/shortenit/pkg/postgres"
)

type APITestSuite struct {
	suite.Suite
	pgCont    testcontainers.Container
	cfg       *config.Config
	db        *sqlx.DB
	logger    *httplog.Logger
	accountUC *usecase.AccountUseCase
	server    *httptest.Server
	e         *httpexpect.Expect
}

func (suite *APITestSuite) SetupSuite() {
	ctx := context.Background()

	pgUser := "test"
	pgPassword := "test"
	pgDB := "shortenit"

	var err error
	suite.pgCont, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForListeningPort("5432/tcp"),
		},
		Started: true,
	})
	if err != nil {
		suite.T().Fatalf("Failed to start postgres container: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.pgCont.Terminate(ctx); err != nil {
			suite.T().Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := suite.pgCont.Host(ctx)
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container host: %v", err)
	}

	pgPort, err := suite.pgCont.MappedPort(ctx, "5432")
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container port: %v", err)
	}

	suite.cfg = &config.Config{
		Env:     config.EnvDev,
		BaseURL: "http://sho.rt",
		ShortCode: config.ShortCode{
			Length:      6,
			MaxAttempts: 10,
		},
		Quota: config.Quota{
			DefaultDailyLimit: 2,
		},
		Postgres: config.Postgres{
			User:           pgUser,
			Password:       pgPassword,
			Host:           pgHost,
			Port:           pgPort.Int(),
			DB:             pgDB,
			SSLMode:        "disable",
			MaxOpenConns:   25,
			MaxIdleConns:   5,
			QueryTimeout:   5 * time.Second,
			MigrationsPath: "file://../../migrations",
		},
		Cache: config.Cache{
			Driver: config.CacheDriverNone,
			TTL:    time.Minute,
		},
	}

	suite.db, err = ConnectDB(ctx, suite.cfg)
	if err != nil {
		suite.T().Fatalf("Failed to connect to database: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.db.Close(); err != nil {
			suite.T().Fatalf("Failed to close database: %v", err)
		}
	})

	if err := postgres.RunMigrations(suite.cfg.Postgres.MigrationsPath, suite.cfg.Postgres.DSN()); err != nil {
		suite.T().Fatalf("Failed to run migrations: %v", err)
	}

	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	suite.accountUC = NewAccountUseCase(suite.db, suite.cfg)

	handler, _ := newHandler(suite.db, nil, suite.cfg, suite.logger)
	suite.server = httptest.NewServer(handler)
	suite.T().Cleanup(suite.server.Close)

	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *APITestSuite) TearDownSubTest() {
	_, err := suite.db.ExecContext(context.Background(),
		`TRUNCATE TABLE access_events, short_urls, accounts RESTART IDENTITY CASCADE`)
	if err != nil {
		suite.T().Fatalf("Failed to clean tables: %v", err)
	}
}

func (suite *APITestSuite) createAccount(name string, limit int) string {
	account, err := suite.accountUC.CreateAccount(context.Background(), name, limit)
	suite.Require().NoError(err)

	return account.APIKey.String()
}

func (suite *APITestSuite) shorten(apiKey, originalURL string) *httpexpect.Response {
	return suite.e.POST("/api/v1/urls").
		WithHeader("X-API-Key", apiKey).
		WithJSON(map[string]string{"original_url": originalURL}).
		Expect()
}

func (suite *APITestSuite) TestDailyLimit() {
	suite.Run("third creation rejected", func() {
		apiKey := suite.createAccount("acme", 2)

		suite.shorten(apiKey, "https://example.com/1").Status(http.StatusCreated)
		suite.shorten(apiKey, "https://example.com/2").Status(http.StatusCreated)

		resp := suite.shorten(apiKey, "https://example.com/3").
			Status(http.StatusTooManyRequests).
			JSON().Object()

		resp.HasValue("daily_limit", 2)
		resp.HasValue("remaining", 0)
		resp.HasValue("reset_at", entity.QuotaResetAt(time.Now()).Format(time.RFC3339))

		suite.e.GET("/api/v1/urls").
			WithHeader("X-API-Key", apiKey).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("urls").Array().Length().IsEqual(2)
	})

	suite.Run("usage resets on the next day", func() {
		apiKey := suite.createAccount("acme", 1)

		suite.shorten(apiKey, "https://example.com/1").Status(http.StatusCreated)
		suite.shorten(apiKey, "https://example.com/2").Status(http.StatusTooManyRequests)

		yesterday := entity.Day(time.Now()).AddDate(0, 0, -1)
		_, err := suite.db.ExecContext(context.Background(),
			`UPDATE accounts SET last_usage_date = $1`, yesterday)
		suite.Require().NoError(err)

		suite.e.GET("/api/v1/account").
			WithHeader("X-API-Key", apiKey).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("daily_usage", 0).
			HasValue("remaining", 1)

		suite.shorten(apiKey, "https://example.com/3").Status(http.StatusCreated)
	})

	suite.Run("zero limit", func() {
		apiKey := suite.createAccount("acme", 0)

		suite.shorten(apiKey, "https://example.com").Status(http.StatusTooManyRequests)
	})
}

func (suite *APITestSuite) TestConcurrentQuota() {
	suite.Run("limit never exceeded", func() {
		const (
			limit    = 5
			requests = 25
		)

		apiKey := suite.createAccount("acme", limit)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			statuses = make(map[int]int)
		)

		for i := 0; i < requests; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				body := fmt.Sprintf(`{"original_url": "https://example.com/%d"}`, i)
				req, err := http.NewRequest(http.MethodPost, suite.server.URL+"/api/v1/urls", bytes.NewBufferString(body))
				if err != nil {
					return
				}
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("X-API-Key", apiKey)

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return
				}
				resp.Body.Close()

				mu.Lock()
				statuses[resp.StatusCode]++
				mu.Unlock()
			}(i)
		}

		wg.Wait()

		suite.Equal(limit, statuses[http.StatusCreated])
		suite.Equal(requests-limit, statuses[http.StatusTooManyRequests])

		var count int
		suite.Require().NoError(suite.db.Get(&count, `SELECT COUNT(*) FROM short_urls`))
		suite.Equal(limit, count)
	})
}

func (suite *APITestSuite) TestCodeUniqueness() {
	suite.Run("every code of a tiny code space used once", func() {
		cfg := *suite.cfg
		cfg.ShortCode = config.ShortCode{Length: 1, MaxAttempts: 5000}

		handler, _ := newHandler(suite.db, nil, &cfg, suite.logger)
		server := httptest.NewServer(handler)
		defer server.Close()

		e := httpexpect.Default(suite.T(), server.URL)
		apiKey := suite.createAccount("acme", 100)

		codes := make(map[string]bool)
		for i := 0; i < len(usecase.Alphabet); i++ {
			code := e.POST("/api/v1/urls").
				WithHeader("X-API-Key", apiKey).
				WithJSON(map[string]string{"original_url": fmt.Sprintf("https://example.com/%d", i)}).
				Expect().
				Status(http.StatusCreated).
				JSON().Object().
				Value("short_code").String().Raw()

			suite.False(codes[code], "duplicate short code %q", code)
			codes[code] = true
		}

		e.POST("/api/v1/urls").
			WithHeader("X-API-Key", apiKey).
			WithJSON(map[string]string{"original_url": "https://example.com/overflow"}).
			Expect().
			Status(http.StatusInternalServerError)

		var usage int
		suite.Require().NoError(suite.db.Get(&usage, `SELECT daily_usage FROM accounts`))
		suite.Equal(len(usecase.Alphabet), usage)
	})
}

func (suite *APITestSuite) TestRedirect() {
	suite.Run("every visit logged", func() {
		apiKey := suite.createAccount("acme", 2)

		code := suite.shorten(apiKey, "example.com/page").
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("original_url", "https://example.com/page").
			Value("short_code").String().Raw()

		for i := 0; i < 3; i++ {
			suite.e.GET("/"+code).
				WithRedirectPolicy(httpexpect.DontFollowRedirects).
				WithHeader("User-Agent", "integration-test").
				Expect().
				Status(http.StatusFound).
				Header("Location").IsEqual("https://example.com/page")
		}

		suite.e.GET("/api/v1/urls/"+code).
			WithHeader("X-API-Key", apiKey).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("stats").Object().
			HasValue("access_count", 3)

		events := suite.e.GET("/api/v1/analytics").
			WithHeader("X-API-Key", apiKey).
			WithQuery("code", code).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("events").Array()

		events.Length().IsEqual(3)
		events.Value(0).Object().HasValue("user_agent", "integration-test")
	})

	suite.Run("unknown code", func() {
		suite.e.GET("/zzzzzz").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusNotFound)
	})
}

func (suite *APITestSuite) TestOwnership() {
	suite.Run("foreign delete rejected", func() {
		owner := suite.createAccount("owner", 2)
		other := suite.createAccount("other", 2)

		code := suite.shorten(owner, "https://example.com").
			Status(http.StatusCreated).
			JSON().Object().
			Value("short_code").String().Raw()

		suite.e.DELETE("/api/v1/urls/"+code).
			WithHeader("X-API-Key", other).
			Expect().
			Status(http.StatusForbidden)

		suite.e.GET("/"+code).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound)

		suite.e.GET("/api/v1/analytics").
			WithHeader("X-API-Key", other).
			WithQuery("code", code).
			Expect().
			Status(http.StatusForbidden)
	})

	suite.Run("deleted url not found", func() {
		apiKey := suite.createAccount("acme", 2)

		code := suite.shorten(apiKey, "https://example.com").
			Status(http.StatusCreated).
			JSON().Object().
			Value("short_code").String().Raw()

		suite.e.GET("/"+code).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound)

		suite.e.DELETE("/api/v1/urls/"+code).
			WithHeader("X-API-Key", apiKey).
			Expect().
			Status(http.StatusNoContent)

		suite.e.GET("/"+code).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusNotFound)

		var events int
		suite.Require().NoError(suite.db.Get(&events, `SELECT COUNT(*) FROM access_events`))
		suite.Zero(events)
	})
}

func (suite *APITestSuite) TestAccountDeletion() {
	suite.Run("cascades to urls and events", func() {
		apiKey := suite.createAccount("acme", 2)

		code := suite.shorten(apiKey, "https://example.com").
			Status(http.StatusCreated).
			JSON().Object().
			Value("short_code").String().Raw()

		suite.e.GET("/"+code).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound)

		account, err := suite.accountUC.Authenticate(context.Background(), apiKey)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.accountUC.DeleteAccount(context.Background(), account.ID))

		suite.e.GET("/api/v1/urls").
			WithHeader("X-API-Key", apiKey).
			Expect().
			Status(http.StatusUnauthorized)

		suite.e.GET("/"+code).
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusNotFound)
	})
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
