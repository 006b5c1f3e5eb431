// Package watchhistory реализует HTTP-обработчик истории просмотров.
//
// Обработчик работает только за auth-middleware и возвращает просмотренные
// пользователем видео от новых к старым с плоскими полями владельца.
package watchhistory

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Service описывает интерфейс бизнес-логики истории просмотров.
type Service interface {
	WatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryEntry, error)
}

// Handler обрабатывает HTTP-запросы истории просмотров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary История просмотров
// @Description Возвращает просмотренные видео текущего пользователя от новых к старым.
// @Tags User
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "История просмотров"
// @Failure 401 {object} response.ErrorResponse "Неавторизованный запрос"
// @Router /users/history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.watchhistory"

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

	entries, err := h.service.WatchHistory(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to fetch watch history", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("watch history fetched",
		slog.String("username", user.Username),
		slog.Int("count", len(entries)))
	render.JSON(w, r, response.OK(http.StatusOK, entries, "watch history fetched successfully"))
}
