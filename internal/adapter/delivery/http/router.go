// Package http provides the HTTP delivery layer of the service: the public
// redirect endpoint and the authenticated management API.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// BaseURL prefixes short codes in returned short links.
	BaseURL string
	Retry   RetryOptions
}

// NewRouter initializes and returns a new Chi router configured with middleware and routes.
func NewRouter(
	logger *httplog.Logger,
	opts Options,
	urlUseCase urlUseCase,
	redirectUseCase redirectUseCase,
	accountUseCase accountUseCase,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", apiKeyHeader},
		ExposedHeaders:   []string{"Location", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer)
	r.Use(instrument)

	rt := retrier{opts: opts.Retry}
	validate := newValidator()

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(accountUseCase, rt))

			uh := newURLHandler(urlUseCase, validate, rt, opts.BaseURL)
			ah := newAccountHandler(accountUseCase, rt)

			r.Route("/urls", func(r chi.Router) {
				r.Post("/", uh.shortenURL)
				r.Get("/", uh.listURLs)

				r.Route("/{shortCode}", func(r chi.Router) {
					r.Get("/", uh.getURL)
					r.Delete("/", uh.deleteURL)
					r.Get("/qr", uh.getQRCode)
				})
			})

			r.Get("/analytics", uh.listAccessEvents)
			r.Get("/account", ah.getAccount)
		})
	})

	rh := newRedirectHandler(redirectUseCase, rt)
	r.Get("/{shortCode}", rh.redirect)

	return r
}
