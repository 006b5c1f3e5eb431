// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Обработчик работает только за auth-middleware: пользователь берется
// из контекста запроса. Сохраненный refresh-токен обнуляется,
// обе auth-cookie очищаются.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/cookies"
	"github.com/videonest/backend/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, userUID string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Обнуляет сохраненный refresh-токен и очищает auth-cookie.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Неавторизованный запрос"
// @Router /users/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("no user in request context")
		response.RenderError(w, r, apperror.Unauthorized("unauthorized request"))
		return
	}

	if err := h.service.Logout(r.Context(), user.UID); err != nil {
		log.Error("logout failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	cookies.ClearAuthPair(w)

	log.Info("logout success", slog.String("username", user.Username))
	render.JSON(w, r, response.OK(http.StatusOK, map[string]any{}, "user logged out"))
}
