// Package models содержит доменные модели сервиса: учётную запись пользователя,
// видеоролики и результаты агрегирующих запросов профиля канала и истории просмотров.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID           string     `json:"uid"`           // Уникальный идентификатор пользователя
	Fullname      string     `json:"fullname"`      // Отображаемое имя
	Email         string     `json:"email"`         // Электронная почта (уникальная)
	Username      string     `json:"username"`      // Имя пользователя (уникальное, в нижнем регистре)
	PasswordHash  string     `json:"-"`             // Хэш пароля, наружу не отдается
	AvatarURL     string     `json:"avatar"`        // URL аватара
	CoverImageURL string     `json:"coverImage,omitempty"` // URL обложки профиля
	RefreshToken  string     `json:"-"`             // Текущий refresh-токен, наружу не отдается
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Public возвращает копию пользователя без чувствительных полей.
// Хэш пароля и refresh-токен не сериализуются в любом случае,
// метод явно обнуляет их перед передачей в ответ.
func (u User) Public() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}
