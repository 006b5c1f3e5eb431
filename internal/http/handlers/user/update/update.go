// Package update реализует HTTP-обработчик изменения данных учетной записи.
//
// Обработчик работает только за auth-middleware. Оба поля — fullname
// и email — обязательны; после обновления возвращается учетная запись
// без чувствительных полей.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Request — структура входных данных для обновления профиля.
type Request struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateDetails(ctx context.Context, userUID, fullname, email string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы обновления профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление данных учетной записи
// @Description Обновляет fullname и email текущего пользователя.
// @Tags User
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} response.Response "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Router /users/update-account [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("invalid request body"))
		return
	}
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.RenderError(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.UpdateDetails(r.Context(), user.UID, req.Fullname, req.Email)
	if err != nil {
		log.Error("failed to update account details", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("account details updated", slog.String("username", updated.Username))
	render.JSON(w, r, response.OK(http.StatusOK, updated, "account details updated successfully"))
}
