package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/metrics"
)

const apiKeyHeader = "X-API-Key"

type ctxKey int

const accountCtxKey ctxKey = iota

func withAccount(ctx context.Context, account *entity.Account) context.Context {
	return context.WithValue(ctx, accountCtxKey, account)
}

// accountFromContext returns the account set by authenticate.
func accountFromContext(ctx context.Context) *entity.Account {
	account, _ := ctx.Value(accountCtxKey).(*entity.Account)
	return account
}

// authenticate resolves the X-API-Key header to an account and rejects the
// request with 401 when that fails.
func authenticate(useCase accountUseCase, rt retrier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(apiKeyHeader)
			if apiKey == "" {
				renderError(w, r, entity.ErrUnauthenticated)
				return
			}

			var account *entity.Account
			err := rt.do(r.Context(), func() error {
				var err error
				account, err = useCase.Authenticate(r.Context(), apiKey)
				return err
			})
			if err != nil {
				renderError(w, r, err)
				return
			}

			httplog.LogEntrySetField(r.Context(), "account_id", slog.Int64Value(account.ID))

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
		}

		return http.HandlerFunc(fn)
	}
}

// recoverer turns a panic in a handler into a logged 500 response.
func recoverer(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			httplog.LogEntrySetField(r.Context(), "panic", slog.AnyValue(rec))
			httplog.LogEntry(r.Context()).Error("something went wrong, panic occurred")

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, serverErrorResponse)
		}()

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// instrument records request count and latency labelled by route pattern.
func instrument(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
	}

	return http.HandlerFunc(fn)
}
