package http

import (
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/metrics"
)

type redirectHandler struct {
	useCase redirectUseCase
	retry   retrier
}

func newRedirectHandler(useCase redirectUseCase, rt retrier) *redirectHandler {
	return &redirectHandler{
		useCase: useCase,
		retry:   rt,
	}
}

// redirect sends the visitor to the original URL with 302 Found so that
// every visit reaches the service and is counted.
func (h *redirectHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	visit := entity.Visit{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Referer:   r.Referer(),
	}

	var originalURL string
	err := h.retry.do(r.Context(), func() error {
		var err error
		originalURL, err = h.useCase.ResolveAndLog(r.Context(), shortCode, visit)
		return err
	})
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			metrics.RedirectTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.RedirectTotal.WithLabelValues("error").Inc()
		}

		renderError(w, r, err)
		return
	}

	metrics.RedirectTotal.WithLabelValues("found").Inc()

	w.Header().Set("Cache-Control", "private, max-age=0")
	http.Redirect(w, r, originalURL, http.StatusFound)
}

// clientIP strips the port from RemoteAddr. RealIP may already have
// replaced it with a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
