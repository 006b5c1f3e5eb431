// Package coverimage реализует HTTP-обработчик смены обложки профиля.
//
// Повторяет поведение смены аватара: файл приходит в поле coverImage
// multipart-формы, загружается в объектное хранилище, URL сохраняется
// на учетной записи.
package coverimage

import (
	"context"
	"io"
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

const maxUploadSize = 32 << 20

// Service описывает интерфейс бизнес-логики смены обложки.
type Service interface {
	UpdateCoverImage(ctx context.Context, userUID string, file io.Reader, filename, contentType string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы смены обложки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Смена обложки профиля
// @Description Загружает новую обложку в объектное хранилище и обновляет URL на учетной записи.
// @Tags User
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или не загрузился"
// @Router /users/cover-image [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.coverimage"

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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("coverImage")
	if err != nil {
		log.Error("cover image file is missing", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("cover image file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	updated, err := h.service.UpdateCoverImage(r.Context(), user.UID, file,
		header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		log.Error("failed to update cover image", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("cover image updated", slog.String("username", updated.Username))
	render.JSON(w, r, response.OK(http.StatusOK, updated, "cover image updated successfully"))
}
