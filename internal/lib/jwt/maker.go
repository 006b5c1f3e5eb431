// Package jwt реализует генерацию и парсинг пары JWT токенов: короткоживущего
// access-токена и долгоживущего refresh-токена, каждый со своим секретом и TTL.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с использованием секретных ключей и сроков жизни.
package jwt

import (
	"time"

	"github.com/videonest/backend/internal/models"
)

// Maker описывает интерфейс для генерации и парсинга пары JWT токенов.
type Maker interface {
	// GenerateAccessToken создает access-токен с uid, username и email пользователя
	GenerateAccessToken(user *models.User) (string, error)
	// GenerateRefreshToken создает refresh-токен, несущий только uid пользователя
	GenerateRefreshToken(user *models.User) (string, error)
	// ParseAccessToken возвращает *AccessClaims, если токен подписан access-секретом и не истек
	ParseAccessToken(tokenStr string) (*AccessClaims, error)
	// ParseRefreshToken возвращает *RefreshClaims, если токен подписан refresh-секретом и не истек
	ParseRefreshToken(tokenStr string) (*RefreshClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием пары секретных ключей
// и времени жизни каждого вида токена.
type MakerImpl struct {
	accessSecretKey  string        // Секретный ключ для подписи access-токенов
	accessTTL        time.Duration // Время жизни access-токена
	refreshSecretKey string        // Секретный ключ для подписи refresh-токенов
	refreshTTL       time.Duration // Время жизни refresh-токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретных ключей и TTL.
func NewJWTMaker(accessSecretKey string, accessTTL time.Duration,
	refreshSecretKey string, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecretKey:  accessSecretKey,
		accessTTL:        accessTTL,
		refreshSecretKey: refreshSecretKey,
		refreshTTL:       refreshTTL,
	}
}
