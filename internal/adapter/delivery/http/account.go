package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

type accountHandler struct {
	useCase accountUseCase
	retry   retrier
	now     func() time.Time
}

func newAccountHandler(useCase accountUseCase, rt retrier) *accountHandler {
	return &accountHandler{
		useCase: useCase,
		retry:   rt,
		now:     time.Now,
	}
}

func (h *accountHandler) getAccount(w http.ResponseWriter, r *http.Request) {
	caller := accountFromContext(r.Context())

	var account *entity.Account
	err := h.retry.do(r.Context(), func() error {
		var err error
		account, err = h.useCase.GetAccount(r.Context(), caller.ID)
		return err
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccountResponse(account, h.now()))
}
