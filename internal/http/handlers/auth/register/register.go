// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Запрос приходит в формате multipart/form-data: текстовые поля
// fullname, email, username, password и файлы avatar (обязательный)
// и coverImage (опциональный). Файлы загружаются в объектное хранилище,
// после чего создание учетной записи делегируется сервису аутентификации.
// При успехе публикуется приветственное уведомление.
package register

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// maxUploadSize предельный размер multipart-запроса регистрации.
const maxUploadSize = 32 << 20

// Request — текстовые поля формы регистрации.
type Request struct {
	Fullname string `validate:"required"`
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, fullname, email, username, rawPassword, avatarURL, coverImageURL string) (*models.User, error)
}

// Uploader описывает загрузку файлов в объектное хранилище.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, filename, contentType string) (string, error)
}

// Notifier публикует приветственное уведомление нового пользователя.
type Notifier interface {
	PublishWelcome(notification models.WelcomeNotification) error
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	uploader Uploader
	notifier Notifier
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, uploader Uploader, notifier Notifier) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		uploader: uploader,
		notifier: notifier,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись по данным multipart-формы с аватаром и опциональной обложкой.
// @Tags Auth
// @Accept  mpfd
// @Produce  json
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма, пустые поля или дубликат"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("invalid multipart form"))
		return
	}

	req := Request{
		Fullname: strings.TrimSpace(r.FormValue("fullname")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.RenderError(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	avatarFile, avatarHeader, err := r.FormFile("avatar")
	if err != nil {
		log.Error("avatar file is missing", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("avatar file is required"))
		return
	}
	defer func() { _ = avatarFile.Close() }()

	avatarURL, err := h.uploader.Upload(r.Context(), avatarFile, "avatars",
		avatarHeader.Filename, avatarHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Error("failed to upload avatar", sl.Err(err))
		response.RenderError(w, r, apperror.BadRequest("error while uploading avatar"))
		return
	}

	var coverImageURL string
	if coverFile, coverHeader, err := r.FormFile("coverImage"); err == nil {
		defer func() { _ = coverFile.Close() }()
		coverImageURL, err = h.uploader.Upload(r.Context(), coverFile, "covers",
			coverHeader.Filename, coverHeader.Header.Get("Content-Type"))
		if err != nil {
			log.Error("failed to upload cover image", sl.Err(err))
			response.RenderError(w, r, apperror.BadRequest("error while uploading cover image"))
			return
		}
	}

	user, err := h.service.Register(r.Context(), req.Fullname, req.Email, req.Username,
		req.Password, avatarURL, coverImageURL)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if err := h.notifier.PublishWelcome(models.WelcomeNotification{
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		log.Warn("failed to publish welcome notification", sl.Err(err))
	}

	log.Info("user registered", slog.String("username", user.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, user, "user registered successfully"))
}
