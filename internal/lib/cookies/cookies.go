// Package cookies содержит вспомогательные функции для установки и очистки
// пары авторизационных cookie: accessToken и refreshToken. Оба выставляются
// с флагами HttpOnly и Secure.
package cookies

import "net/http"

const (
	// AccessTokenCookie имя cookie с access-токеном.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie имя cookie с refresh-токеном.
	RefreshTokenCookie = "refreshToken"
)

// SetAuthPair выставляет accessToken и refreshToken в cookie ответа.
func SetAuthPair(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthPair очищает оба авторизационных cookie с теми же флагами.
func ClearAuthPair(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
