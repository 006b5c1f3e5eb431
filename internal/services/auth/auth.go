// Package services содержит логику бизнес-уровня для работы с учетными записями
// и жизненным циклом пары JWT токенов: выдача, ротация, отзыв и проверка.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/videonest/backend/internal/lib/apperror"
	"github.com/videonest/backend/internal/lib/jwt"
	"github.com/videonest/backend/internal/lib/password"
	"github.com/videonest/backend/internal/models"
	"github.com/videonest/backend/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUID возвращает пользователя по UID или storage.ErrUserNotFound.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByLogin возвращает пользователя по username или email.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// ExistsUser проверяет, занят ли username или email.
	ExistsUser(ctx context.Context, username, email string) (bool, error)

	// UpdateRefreshToken перезаписывает текущий refresh-токен пользователя.
	UpdateRefreshToken(ctx context.Context, userUID, refreshToken string) (int, error)

	// UpdatePassword записывает новый хэш пароля.
	UpdatePassword(ctx context.Context, userUID, passwordHash string) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и жизненный цикл JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля. Username
// приводится к нижнему регистру, уникальность username и email проверяется
// до записи. Возвращает созданного пользователя, перечитанного из базы.
func (s *AuthService) Register(ctx context.Context, fullname, email, username, rawPassword, avatarURL, coverImageURL string) (*models.User, error) {
	username = strings.ToLower(username)

	exists, err := s.users.ExistsUser(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.BadRequest("user with email or username already exists")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Fullname:      fullname,
		Email:         email,
		Username:      username,
		PasswordHash:  hashed,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}
	newUID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.users.GetUserByUID(ctx, newUID)
	if err != nil {
		return nil, apperror.Internal("something went wrong while registering the user")
	}
	public := created.Public()
	return &public, nil
}

// Login проверяет пароль пользователя по username или email
// и выполняет ротацию пары токенов.
func (s *AuthService) Login(ctx context.Context, login, rawPassword string) (*models.User, string, string, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", "", apperror.NotFound("user does not exist")
		}
		return nil, "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", apperror.Unauthorized("invalid user credentials")
	}

	accessToken, refreshToken, err := s.RotateTokens(ctx, user.UID)
	if err != nil {
		return nil, "", "", err
	}
	public := user.Public()
	return &public, accessToken, refreshToken, nil
}

// RotateTokens выдает свежую пару токенов и сохраняет новый refresh-токен
// как текущий, перезаписывая предыдущий. Перезапись — единственный механизм
// инвалидации старого refresh-токена.
func (s *AuthService) RotateTokens(ctx context.Context, userUID string) (string, string, error) {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return "", "", apperror.Internal("failed to generate tokens")
	}

	accessToken, err := s.jwtMaker.GenerateAccessToken(user)
	if err != nil {
		return "", "", apperror.Internal("failed to generate tokens")
	}
	refreshToken, err := s.jwtMaker.GenerateRefreshToken(user)
	if err != nil {
		return "", "", apperror.Internal("failed to generate tokens")
	}

	rows, err := s.users.UpdateRefreshToken(ctx, user.UID, refreshToken)
	if err != nil || rows == 0 {
		return "", "", apperror.Internal("failed to generate tokens")
	}
	return accessToken, refreshToken, nil
}

// Refresh проверяет refresh-токен, сверяет его с сохраненным на пользователе
// и в случае совпадения выполняет ротацию пары.
func (s *AuthService) Refresh(ctx context.Context, incomingToken string) (*models.User, string, string, error) {
	claims, err := s.jwtMaker.ParseRefreshToken(incomingToken)
	if err != nil {
		return nil, "", "", apperror.Unauthorized("invalid refresh token")
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		return nil, "", "", apperror.Unauthorized("invalid refresh token")
	}

	if user.RefreshToken == "" || user.RefreshToken != incomingToken {
		return nil, "", "", apperror.Unauthorized("Refresh token is expired or used")
	}

	accessToken, refreshToken, err := s.RotateTokens(ctx, user.UID)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Logout очищает сохраненный refresh-токен пользователя.
func (s *AuthService) Logout(ctx context.Context, userUID string) error {
	_, err := s.users.UpdateRefreshToken(ctx, userUID, "")
	return err
}

// ChangePassword проверяет старый пароль и записывает хэш нового.
func (s *AuthService) ChangePassword(ctx context.Context, userUID, oldPassword, newPassword string) error {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return apperror.BadRequest("invalid old password")
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	_, err = s.users.UpdatePassword(ctx, userUID, hashed)
	return err
}

// ValidateAccessToken проверяет access-токен и возвращает пользователя
// без чувствительных полей.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Unauthorized(err.Error())
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		return nil, apperror.Unauthorized("invalid access token")
	}

	public := user.Public()
	return &public, nil
}
