// Package api предоставляет маршруты основного приложения.
package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/videonest/backend/internal/http/handlers/auth/changepassword"
	"github.com/videonest/backend/internal/http/handlers/auth/login"
	"github.com/videonest/backend/internal/http/handlers/auth/logout"
	"github.com/videonest/backend/internal/http/handlers/auth/refresh"
	"github.com/videonest/backend/internal/http/handlers/auth/register"
	"github.com/videonest/backend/internal/http/handlers/user/avatar"
	"github.com/videonest/backend/internal/http/handlers/user/channelprofile"
	"github.com/videonest/backend/internal/http/handlers/user/coverimage"
	"github.com/videonest/backend/internal/http/handlers/user/update"
	"github.com/videonest/backend/internal/http/handlers/user/watchhistory"
	"github.com/videonest/backend/internal/http/middlewarectx"
	"github.com/videonest/backend/internal/media"
	"github.com/videonest/backend/internal/rabbitmq"
	authservice "github.com/videonest/backend/internal/services/auth"
	userservice "github.com/videonest/backend/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService, userService *userservice.UserService,
	uploader *media.Uploader, publisher *rabbitmq.Publisher) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1/users", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService, uploader, publisher).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/refresh-token", refresh.New(logger, authService).ServeHTTP)

		// Публичная страница канала: аутентификация опциональна,
		// зритель влияет только на флаг isSubscribed
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(authService, logger))
			r.Get("/channel/{username}", channelprofile.New(logger, userService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/change-password", changepassword.New(logger, authService).ServeHTTP)
			r.Patch("/update-account", update.New(logger, userService).ServeHTTP)
			r.Patch("/avatar", avatar.New(logger, userService).ServeHTTP)
			r.Patch("/cover-image", coverimage.New(logger, userService).ServeHTTP)
			r.Get("/history", watchhistory.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
