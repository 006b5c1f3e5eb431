// Package jwt реализует генерацию и парсинг пары JWT токенов.
//
// AccessClaims расширяет стандартные claims, добавляя uid, username и email пользователя.
// RefreshClaims несет только uid — refresh-токен ничего лишнего о пользователе не знает.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/videonest/backend/internal/models"
)

// AccessClaims описывает данные пользователя, хранящиеся в access-токене.
type AccessClaims struct {
	UserUID              string `json:"uid"`      // Уникальный идентификатор пользователя
	Username             string `json:"username"` // Имя пользователя
	Email                string `json:"email"`    // Электронная почта
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// RefreshClaims описывает данные, хранящиеся в refresh-токене.
type RefreshClaims struct {
	UserUID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateAccessToken создает access-токен с uid, username и email пользователя,
// подписывая его access-секретом. Время жизни определяется полем accessTTL.
func (j *MakerImpl) GenerateAccessToken(user *models.User) (string, error) {
	claims := AccessClaims{
		UserUID:  user.UID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.accessSecretKey))
}

// GenerateRefreshToken создает refresh-токен, несущий только uid пользователя,
// подписывая его refresh-секретом. Время жизни определяется полем refreshTTL.
func (j *MakerImpl) GenerateRefreshToken(user *models.User) (string, error) {
	claims := RefreshClaims{
		UserUID: user.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.refreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.refreshSecretKey))
}

// ParseAccessToken парсит access-токен, проверяет его подпись и срок жизни,
// возвращает AccessClaims с данными, если токен корректен.
func (j *MakerImpl) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	const op = "jwt.ParseAccessToken"
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.accessSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// ParseRefreshToken парсит refresh-токен, проверяет его подпись и срок жизни,
// возвращает RefreshClaims с uid пользователя, если токен корректен.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	const op = "jwt.ParseRefreshToken"
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.refreshSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
