// Package middlewarectx содержит HTTP middleware для проверки access-токенов.
//
// JWTMiddleware извлекает токен из cookie accessToken или заголовка
// Authorization (cookie имеет приоритет), проверяет его через сервис
// аутентификации и кладет найденного пользователя в контекст запроса.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/videonest/backend/internal/http/response"
	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/cookies"
	"github.com/videonest/backend/internal/lib/sl"
	"github.com/videonest/backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey ключ для аутентифицированного пользователя в контексте.
const UserKey Key = "user"

// Service описывает интерфейс сервиса для проверки access-токена.
type Service interface {
	ValidateAccessToken(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser возвращает пользователя, положенного в контекст middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// extractToken достает токен из cookie accessToken или заголовка
// Authorization: Bearer. Cookie имеет приоритет.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(cookies.AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// JWTMiddleware возвращает HTTP middleware, который проверяет access-токен
// и кладет пользователя в контекст запроса. Без валидного токена запрос
// отклоняется с HTTP 401.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := extractToken(r)
			if tokenStr == "" {
				log.Error("missing access token")
				response.RenderError(w, r, apperror.Unauthorized("unauthorized request"))
				return
			}

			user, err := authService.ValidateAccessToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				response.RenderError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTMiddleware работает как JWTMiddleware, но пропускает запрос
// дальше анонимно, если токена нет или он не прошел проверку. Используется
// на публичных страницах каналов, где наличие зрителя влияет только
// на флаг isSubscribed.
func OptionalJWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.ValidateAccessToken(r.Context(), tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
