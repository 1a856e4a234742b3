package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/metrics"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	retry    retrier
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, rt retrier, baseURL string) *urlHandler {
	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		retry:    rt,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

func (h *urlHandler) shortURL(shortCode string) string {
	return h.baseURL + "/" + shortCode
}

// shortenURL is not retried: a lost commit acknowledgement would charge the
// quota twice.
func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeRequest(w, r, h.validate, &req) {
		metrics.URLCreationTotal.WithLabelValues("invalid").Inc()
		return
	}

	account := accountFromContext(r.Context())

	url, err := h.useCase.ShortenURL(r.Context(), account.ID, req.OriginalURL)
	if err != nil {
		metrics.URLCreationTotal.WithLabelValues(creationOutcome(err)).Inc()
		renderError(w, r, err)
		return
	}

	metrics.URLCreationTotal.WithLabelValues("created").Inc()

	w.Header().Set("Location", "/api/v1/urls/"+url.ShortCode)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url, h.shortURL(url.ShortCode)))
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())

	var urls []entity.URL
	err := h.retry.do(r.Context(), func() error {
		var err error
		urls, err = h.useCase.ListURLs(r.Context(), account.ID)
		return err
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := urlListResponse{URLs: make([]urlStatsResponse, 0, len(urls))}
	for i := range urls {
		resp.URLs = append(resp.URLs, toURLStatsResponse(&urls[i], h.shortURL(urls[i].ShortCode)))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *urlHandler) getURL(w http.ResponseWriter, r *http.Request) {
	url, ok := h.ownedURL(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLStatsResponse(url, h.shortURL(url.ShortCode)))
}

func (h *urlHandler) deleteURL(w http.ResponseWriter, r *http.Request) {
	account := accountFromContext(r.Context())
	shortCode := chi.URLParam(r, "shortCode")

	err := h.retry.do(r.Context(), func() error {
		return h.useCase.DeleteURL(r.Context(), account.ID, shortCode)
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getQRCode renders the public short link as a PNG QR code.
func (h *urlHandler) getQRCode(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < minQRSize || n > maxQRSize {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, invalidQueryResponse)
			return
		}
		size = n
	}

	url, ok := h.ownedURL(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(h.shortURL(url.ShortCode), qrcode.Medium, size)
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *urlHandler) listAccessEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := intQuery(query.Get("limit"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryResponse)
		return
	}

	offset, err := intQuery(query.Get("offset"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryResponse)
		return
	}

	account := accountFromContext(r.Context())
	shortCode := query.Get("code")
	page := entity.Page{Limit: limit, Offset: offset}.Normalize()

	var events []entity.AccessEvent
	err = h.retry.do(r.Context(), func() error {
		var err error
		events, err = h.useCase.ListAccessEvents(r.Context(), account.ID, shortCode, page)
		return err
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccessEventListResponse(events, page))
}

// ownedURL loads the URL named in the path on behalf of the caller and
// writes the error response when it cannot be shown.
func (h *urlHandler) ownedURL(w http.ResponseWriter, r *http.Request) (*entity.URL, bool) {
	account := accountFromContext(r.Context())
	shortCode := chi.URLParam(r, "shortCode")

	var url *entity.URL
	err := h.retry.do(r.Context(), func() error {
		var err error
		url, err = h.useCase.GetURL(r.Context(), account.ID, shortCode)
		return err
	})
	if err != nil {
		renderError(w, r, err)
		return nil, false
	}

	return url, true
}

func intQuery(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}

	return n, nil
}

func creationOutcome(err error) string {
	switch {
	case errors.Is(err, entity.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, entity.ErrInvalidURL):
		return "invalid"
	case errors.Is(err, entity.ErrCodeSpaceExhausted):
		return "code_space_exhausted"
	default:
		return "error"
	}
}
