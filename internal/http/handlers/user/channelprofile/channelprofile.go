// Package channelprofile реализует HTTP-обработчик публичной страницы канала.
//
// Маршрут открыт для анонимных запросов и стоит за опциональным
// auth-middleware: если зритель аутентифицирован, его uid участвует
// в вычислении флага isSubscribed.
package channelprofile

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Service описывает интерфейс бизнес-логики страницы канала.
type Service interface {
	ChannelProfile(ctx context.Context, username, viewerUID string) (*models.ChannelProfile, error)
}

// Handler обрабатывает HTTP-запросы страницы канала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль канала
// @Description Возвращает публичный профиль канала с числом подписчиков и флагом isSubscribed.
// @Tags User
// @Produce  json
// @Param username path string true "Имя пользователя канала"
// @Success 200 {object} response.Response "Профиль канала"
// @Failure 400 {object} response.ErrorResponse "Пустое имя канала"
// @Failure 404 {object} response.ErrorResponse "Канал не найден"
// @Router /users/channel/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.channelprofile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		log.Error("empty channel username")
		response.RenderError(w, r, apperror.BadRequest("username is missing"))
		return
	}

	viewerUID := ""
	if viewer, ok := middlewarectx.CurrentUser(r.Context()); ok {
		viewerUID = viewer.UID
	}

	profile, err := h.service.ChannelProfile(r.Context(), username, viewerUID)
	if err != nil {
		log.Error("failed to fetch channel profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("channel profile fetched", slog.String("channel", profile.Username))
	render.JSON(w, r, response.OK(http.StatusOK, profile, "user channel fetched successfully"))
}
