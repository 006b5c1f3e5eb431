package services_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/jwt"
	"github.com/videonest/backend/internal/lib/password"
	"github.com/videonest/backend/internal/models"
	services "github.com/videonest/backend/internal/services/auth"
	"github.com/videonest/backend/internal/storage"
)

// fakeUserRepo хранит пользователей в памяти, имитируя поведение хранилища.
type fakeUserRepo struct {
	users  map[string]*models.User // key: uid
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user models.User) (string, error) {
	r.nextID++
	uid := fmt.Sprintf("uid-%d", r.nextID)
	user.UID = uid
	r.users[uid] = &user
	return uid, nil
}

func (r *fakeUserRepo) GetUserByUID(_ context.Context, userUID string) (*models.User, error) {
	if u, ok := r.users[userUID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, storage.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsUser(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateRefreshToken(_ context.Context, userUID, refreshToken string) (int, error) {
	if u, ok := r.users[userUID]; ok {
		u.RefreshToken = refreshToken
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userUID, passwordHash string) (int, error) {
	if u, ok := r.users[userUID]; ok {
		u.PasswordHash = passwordHash
		return 1, nil
	}
	return 0, nil
}

func newTestService() (*services.AuthService, *fakeUserRepo, *jwt.MakerImpl) {
	repo := newFakeUserRepo()
	maker := jwt.NewJWTMaker("access_secret", 15*time.Minute, "refresh_secret", 240*time.Hour)
	return services.NewAuthService(repo, maker), repo, maker
}

func registerTestUser(t *testing.T, service *services.AuthService) *models.User {
	t.Helper()
	user, err := service.Register(context.Background(), "Ann", "a@x.com", "Ann",
		"p1", "https://media.example.com/a.png", "")
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	user := registerTestUser(t, service)

	// username приводится к нижнему регистру
	assert.Equal(t, "ann", user.Username)
	assert.NotEmpty(t, user.UID)

	// пароль хранится только как bcrypt-хэш
	stored := repo.users[user.UID]
	assert.NotEqual(t, "p1", stored.PasswordHash)
	require.NoError(t, password.CompareHash(stored.PasswordHash, "p1"))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := service.Register(ctx, "Other", "other@x.com", "ANN",
			"p2", "https://media.example.com/b.png", "")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
		assert.Len(t, repo.users, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, "Other", "a@x.com", "other",
			"p2", "https://media.example.com/b.png", "")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
		assert.Len(t, repo.users, 1)
	})
}

func TestAuthService_Login(t *testing.T) {
	service, _, maker := newTestService()
	ctx := context.Background()
	registered := registerTestUser(t, service)

	t.Run("by username", func(t *testing.T) {
		user, accessToken, refreshToken, err := service.Login(ctx, "ann", "p1")
		require.NoError(t, err)
		assert.Equal(t, registered.UID, user.UID)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)

		// access-токен разрешается в того же пользователя
		claims, err := maker.ParseAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.UID, claims.UserUID)
	})

	t.Run("by email", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "a@x.com", "p1")
		require.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "nobody", "p1")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "ann", "wrong")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
	})
}

func TestAuthService_Refresh_RotationInvalidatesOldToken(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()
	registerTestUser(t, service)

	_, _, firstRefresh, err := service.Login(ctx, "ann", "p1")
	require.NoError(t, err)

	// Первая ротация проходит и выдает новый refresh-токен
	_, _, secondRefresh, err := service.Refresh(ctx, firstRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, firstRefresh, secondRefresh)

	// Повторная ротация тем же токеном не проходит
	_, _, _, err = service.Refresh(ctx, firstRefresh)
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.Equal(t, "Refresh token is expired or used", appErr.Message)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	service, _, _ := newTestService()
	registerTestUser(t, service)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "not.a.token"},
		{name: "empty token", token: ""},
		{
			name: "signed with wrong secret",
			token: func() string {
				wrongMaker := jwt.NewJWTMaker("a", time.Minute, "wrong_refresh_secret", time.Hour)
				tok, _ := wrongMaker.GenerateRefreshToken(&models.User{UID: "uid-1"})
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := service.Refresh(context.Background(), tt.token)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()
	user := registerTestUser(t, service)

	_, _, refreshToken, err := service.Login(ctx, "ann", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, repo.users[user.UID].RefreshToken)

	require.NoError(t, service.Logout(ctx, user.UID))
	assert.Empty(t, repo.users[user.UID].RefreshToken)

	// После logout старый refresh-токен больше не работает
	_, _, _, err = service.Refresh(ctx, refreshToken)
	require.Error(t, err)
	assert.Equal(t, "Refresh token is expired or used", apperror.From(err).Message)
}

func TestAuthService_ChangePassword(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()
	user := registerTestUser(t, service)

	t.Run("wrong old password", func(t *testing.T) {
		err := service.ChangePassword(ctx, user.UID, "wrong", "p2")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, service.ChangePassword(ctx, user.UID, "p1", "p2"))

		_, _, _, err := service.Login(ctx, "ann", "p1")
		require.Error(t, err)
		_, _, _, err = service.Login(ctx, "ann", "p2")
		require.NoError(t, err)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	service, _, maker := newTestService()
	ctx := context.Background()
	registered := registerTestUser(t, service)

	_, accessToken, _, err := service.Login(ctx, "ann", "p1")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		user, err := service.ValidateAccessToken(ctx, accessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.UID, user.UID)
		// Чувствительные поля не возвращаются
		assert.Empty(t, user.PasswordHash)
		assert.Empty(t, user.RefreshToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(ctx, accessToken+"x")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		ghost, err := maker.GenerateAccessToken(&models.User{UID: "uid-999", Username: "ghost"})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(ctx, ghost)
		require.Error(t, err)
		assert.Equal(t, "invalid access token", apperror.From(err).Message)
	})
}
