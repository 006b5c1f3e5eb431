// Package changepassword реализует HTTP-обработчик смены пароля.
//
// Обработчик работает только за auth-middleware. Старый пароль сверяется
// с хэшем учетной записи, при совпадении сохраняется хэш нового пароля.
package changepassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, userUID, oldPassword, newPassword string) error
}

// Handler обрабатывает HTTP-запросы смены пароля.
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
// @Summary Смена пароля
// @Description Сверяет старый пароль и сохраняет хэш нового.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Старый и новый пароли"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Неверный старый пароль или ошибка валидации"
// @Router /users/change-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.RenderError(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ChangePassword(r.Context(), user.UID, req.OldPassword, req.NewPassword); err != nil {
		log.Error("password change failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("password changed", slog.String("username", user.Username))
	render.JSON(w, r, response.OK(http.StatusOK, map[string]any{}, "password changed successfully"))
}
