// Package login реализует HTTP-обработчик аутентификации пользователей.
//
// Пользователь входит по username или email вместе с паролем. При успехе
// выдается пара access/refresh токенов: оба устанавливаются в httpOnly-cookie
// и возвращаются в теле ответа вместе с публичными данными учетной записи.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/cookies"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Request — структура входных данных для входа.
// Достаточно одного из идентификаторов: username или email.
type Request struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, login, rawPassword string) (*models.User, string, string, error)
}

// Handler обрабатывает HTTP-запросы входа.
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
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по username или email и паролю. Устанавливает cookie с токенами.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нет идентификатора"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("invalid request body"))
		return
	}

	if req.Username == "" && req.Email == "" {
		log.Error("missing user identifier")
		response.RenderError(w, r, apperror.BadRequest("username or email is required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.RenderError(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	loginID := req.Username
	if loginID == "" {
		loginID = req.Email
	}

	user, accessToken, refreshToken, err := h.service.Login(r.Context(), loginID, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	cookies.SetAuthPair(w, accessToken, refreshToken)

	log.Info("login success", slog.String("username", user.Username))
	render.JSON(w, r, response.OK(http.StatusOK, map[string]any{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "user logged in successfully"))
}
