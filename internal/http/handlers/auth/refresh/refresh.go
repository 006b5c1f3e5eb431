// Package refresh реализует HTTP-обработчик обновления пары токенов.
//
// Входящий refresh-токен берется из cookie refreshToken или из JSON-тела
// запроса. Токен сверяется с сохраненным на учетной записи значением,
// после чего выдается и устанавливается в cookie новая пара токенов.
package refresh

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/cookies"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Request — тело запроса с refresh-токеном (используется,
// если cookie отсутствует).
type Request struct {
	RefreshToken string `json:"refreshToken"`
}

// Service описывает интерфейс бизнес-логики обновления токенов.
type Service interface {
	Refresh(ctx context.Context, incomingToken string) (*models.User, string, string, error)
}

// Handler обрабатывает HTTP-запросы обновления токенов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновление пары токенов
// @Description Проверяет refresh-токен из cookie или тела запроса и выдает новую пару токенов.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request false "Refresh-токен, если нет cookie"
// @Success 200 {object} response.Response "Новая пара токенов"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, просрочен или уже использован"
// @Router /users/refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	incoming := ""
	if c, err := r.Cookie(cookies.RefreshTokenCookie); err == nil {
		incoming = c.Value
	}
	if incoming == "" {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		log.Error("missing refresh token")
		response.RenderError(w, r, apperror.Unauthorized("unauthorized request"))
		return
	}

	user, accessToken, refreshToken, err := h.service.Refresh(r.Context(), incoming)
	if err != nil {
		log.Error("token refresh failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	cookies.SetAuthPair(w, accessToken, refreshToken)

	log.Info("tokens refreshed", slog.String("username", user.Username))
	render.JSON(w, r, response.OK(http.StatusOK, map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "access token refreshed"))
}
