package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, fullname, username, email, passwordHash string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (fullname, username, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4, $5) RETURNING uid`,
		fullname, username, email, passwordHash, "https://media.example.com/avatars/"+username+".png").Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateSubscription создает тестовую подписку subscriber -> channel
func (f *TestDataFactory) CreateSubscription(t *testing.T, subscriberUID, channelUID string) {
	_, err := f.storage.DB.Exec(`INSERT INTO subscriptions (subscriber_uid, channel_uid)
		VALUES ($1, $2)`, subscriberUID, channelUID)
	require.NoError(t, err)
}

// CreateVideo создает тестовый видеоролик и возвращает его UID
func (f *TestDataFactory) CreateVideo(t *testing.T, title, ownerUID string) string {
	uid, err := f.storage.CreateVideo(t.Context(), models.Video{
		Title:        title,
		Description:  "test video",
		VideoURL:     "https://media.example.com/videos/" + title + ".mp4",
		ThumbnailURL: "https://media.example.com/thumbnails/" + title + ".jpg",
		Duration:     120.5,
		OwnerUID:     ownerUID,
	})
	require.NoError(t, err)
	return uid
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() models.User {
	return models.User{
		Fullname:     "Ann Example",
		Email:        "ann@example.com",
		Username:     "ann",
		PasswordHash: "hashedpassword",
		AvatarURL:    "https://media.example.com/avatars/ann.png",
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyStoredRefreshToken проверяет сохраненный refresh-токен пользователя
func (v *TestVerification) VerifyStoredRefreshToken(t *testing.T, userUID, wantToken string) {
	var token string
	err := v.storage.DB.QueryRow("SELECT COALESCE(refresh_token, '') FROM users WHERE uid = $1", userUID).Scan(&token)
	require.NoError(t, err)
	require.Equal(t, wantToken, token)
}
