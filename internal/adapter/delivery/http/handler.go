package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, accountID int64, originalURL string) (*entity.URL, error)
	GetURL(ctx context.Context, accountID int64, shortCode string) (*entity.URL, error)
	ListURLs(ctx context.Context, accountID int64) ([]entity.URL, error)
	DeleteURL(ctx context.Context, accountID int64, shortCode string) error
	ListAccessEvents(ctx context.Context, accountID int64, shortCode string, page entity.Page) ([]entity.AccessEvent, error)
}

type redirectUseCase interface {
	ResolveAndLog(ctx context.Context, shortCode string, visit entity.Visit) (string, error)
}

type accountUseCase interface {
	Authenticate(ctx context.Context, apiKey string) (*entity.Account, error)
	GetAccount(ctx context.Context, id int64) (*entity.Account, error)
}

// RetryOptions configures the backoff used when storage is temporarily
// unavailable. A zero MaxElapsedTime disables retries.
type RetryOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// retrier repeats an operation while it fails with entity.ErrStorageUnavailable.
type retrier struct {
	opts RetryOptions
}

func (rt retrier) do(ctx context.Context, fn func() error) error {
	if rt.opts.MaxElapsedTime <= 0 {
		return fn()
	}

	b := backoff.NewExponentialBackOff()
	if rt.opts.InitialInterval > 0 {
		b.InitialInterval = rt.opts.InitialInterval
	}
	if rt.opts.MaxInterval > 0 {
		b.MaxInterval = rt.opts.MaxInterval
	}
	b.MaxElapsedTime = rt.opts.MaxElapsedTime

	return backoff.Retry(func() error {
		err := fn()
		if err != nil && !errors.Is(err, entity.ErrStorageUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// decodeRequest reads a JSON body into v and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	if err := validate.Struct(v); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return false
	}

	return true
}

// renderError maps domain errors to HTTP responses. Unexpected errors are
// attached to the request log and hidden from the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var quotaErr *entity.QuotaExceededError

	switch {
	case errors.As(err, &quotaErr):
		w.Header().Set("Retry-After", retryAfter(time.Until(quotaErr.ResetAt)))
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, toQuotaExceededResponse(quotaErr))
	case errors.Is(err, entity.ErrInvalidURL):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidURLResponse)
	case errors.Is(err, entity.ErrUnauthenticated):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, unauthenticatedResponse)
	case errors.Is(err, entity.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, forbiddenResponse)
	case errors.Is(err, entity.ErrURLNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, urlNotFoundResponse)
	case errors.Is(err, entity.ErrAccountNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, accountNotFoundResponse)
	case errors.Is(err, entity.ErrStorageUnavailable):
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		w.Header().Set("Retry-After", "1")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, serviceUnavailableResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

func retryAfter(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
